package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

const CirculationTopic = "circulation"

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Addrs, NewProducerConfig())
}

func NewProducerConfig() *sarama.Config {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Timeout = 5 * time.Second

	return defaultCfg
}

type EventType string

const (
	EventLoanCreated  EventType = "LOAN_CREATED"
	EventLoanReturned EventType = "LOAN_RETURNED"
)

// EventCirculation is the payload published for every completed loan transition.
type EventCirculation struct {
	EventID   string    `json:"eventId"`
	EventType EventType `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	LoanUID   string    `json:"loanUid"`
	UserID    int       `json:"userId"`
	ISBN      string    `json:"isbn"`
	DueDate   time.Time `json:"dueDate"`
	DaysLate  int       `json:"daysLate,omitempty"`
	Fine      float64   `json:"fine,omitempty"`
}
