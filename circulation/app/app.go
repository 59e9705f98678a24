package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/library-circulation/circulation/config"
	"github.com/Astemirdum/library-circulation/circulation/internal/handler"
	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	"github.com/Astemirdum/library-circulation/circulation/internal/notify"
	"github.com/Astemirdum/library-circulation/circulation/internal/publisher"
	"github.com/Astemirdum/library-circulation/circulation/internal/repository"
	"github.com/Astemirdum/library-circulation/circulation/internal/server"
	"github.com/Astemirdum/library-circulation/circulation/internal/service"
	"github.com/Astemirdum/library-circulation/pkg/circuit_breaker"
	"github.com/Astemirdum/library-circulation/pkg/kafka"
	"github.com/Astemirdum/library-circulation/pkg/logger"
	"github.com/Astemirdum/library-circulation/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "circulation")
	defer log.Sync() //nolint:errcheck
	log.Debug("config", zap.Any("config", cfg))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pub, closePub, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closePub()

	svc := newService(os.Stdout, log,
		service.WithPublisher(pub),
		service.WithMetrics(metrics.New(reg)),
		service.WithFinePerDay(cfg.Loan.FinePerDay),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeServer:
		return serve(ctx, cfg.Server, handler.New(svc, reg, log), log)
	default:
		return RunDemo(ctx, svc, os.Stdout)
	}
}

// newService wires one in-memory repository per entity and prints
// notifications to out.
func newService(out io.Writer, log *zap.Logger, opts ...service.Option) *service.Service {
	notifier := notify.Fanout{
		notify.NewConsoleNotifier(out),
		notify.NewLogNotifier(log),
	}
	return service.NewService(
		repository.NewRepository[*model.Book]("books", log),
		repository.NewRepository[*model.User]("users", log),
		repository.NewRepository[*model.Loan]("loans", log),
		notifier,
		log,
		opts...,
	)
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (publisher.Publisher, func(), error) {
	if len(cfg.Addrs) == 0 {
		log.Info("kafka disabled, circulation events are dropped")
		return publisher.NewNopPublisher(), func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "kafka.NewProducer")
	}
	const (
		recordLength     = 10
		openTimeout      = 30 * time.Second
		failurePercent   = 0.5
		recoveryRequests = 3
	)
	cb := circuit_breaker.New(recordLength, openTimeout, failurePercent, recoveryRequests)
	closeFn := func() {
		if err := producer.Close(); err != nil {
			log.Warn("producer.Close", zap.Error(err))
		}
	}
	return publisher.NewKafkaPublisher(producer, cb, log), closeFn, nil
}

func serve(ctx context.Context, cfg config.HTTPServer, h *handler.Handler, log *zap.Logger) error {
	srv := server.NewServer(cfg, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", srv.Addr()))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "serve")
	}
	log.Info("Graceful shutdown finished")
	return nil
}
