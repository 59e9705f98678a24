package notify

import (
	"context"

	"go.uber.org/zap"
)

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, to Recipient, subject, message string) {
	fields := []zap.Field{
		zap.String("subject", subject),
		zap.String("message", message),
		zap.Bool("broadcast", to.IsBroadcast()),
	}
	if u := to.User(); u != nil {
		fields = append(fields, zap.Int("userID", u.ID), zap.String("to", u.Name))
	}
	n.log.Info("notification", fields...)
}
