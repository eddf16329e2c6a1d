package app

import (
	"time"

	"go.uber.org/zap"

	paysplit "github.com/v-stickykeys/paysplit"
)

// Logging is a middleware that reports every message processed by the
// wrapped handler, with its path, duration and outcome.
type Logging struct {
	logger *zap.Logger
	next   paysplit.Handler
}

var _ paysplit.Handler = (*Logging)(nil)

// WithLogging wraps the handler so that every Check and Deliver call is
// logged.
func WithLogging(logger *zap.Logger, next paysplit.Handler) *Logging {
	return &Logging{logger: logger, next: next}
}

func (l *Logging) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	start := time.Now()
	res, err := l.next.Check(ctx, db, tx)
	l.log("check", paysplit.GetPath(tx), start, err)
	return res, err
}

func (l *Logging) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	start := time.Now()
	res, err := l.next.Deliver(ctx, db, tx)
	l.log("deliver", paysplit.GetPath(tx), start, err)
	return res, err
}

func (l *Logging) log(phase, path string, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		l.logger.Info(phase+" failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Debug(phase+" ok", fields...)
}
