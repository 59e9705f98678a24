package publisher

import (
	"context"

	"github.com/Astemirdum/library-circulation/pkg/circuit_breaker"
	"github.com/Astemirdum/library-circulation/pkg/kafka"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=publisher.go -destination=mocks/mock.go

type Publisher interface {
	Publish(ctx context.Context, event kafka.EventCirculation) error
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	topic    string
	log      *zap.Logger
}

// NewKafkaPublisher sends events to kafka.CirculationTopic keyed by loan uid,
// so all events of one loan land in one partition.
func NewKafkaPublisher(producer sarama.SyncProducer, cb circuit_breaker.CircuitBreaker, log *zap.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		producer: producer,
		cb:       cb,
		topic:    kafka.CirculationTopic,
		log:      log.Named("publisher"),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event kafka.EventCirculation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.LoanUID),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrap(err, "producer.SendMessage")
		}
		p.log.Debug("event published",
			zap.String("type", string(event.EventType)),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

type nopPublisher struct{}

// NewNopPublisher drops every event. Used when no kafka brokers are configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, kafka.EventCirculation) error {
	return nil
}
