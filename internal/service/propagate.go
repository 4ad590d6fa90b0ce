package service

import (
	"context"

	"leave-registry/internal/models"

	"github.com/sirupsen/logrus"
)

// Propagator pushes a persisted leave towards one downstream channel
// (calendar, timesheet). Implementations live behind this contract; the
// ingestion service only guarantees the invocation, never the delivery.
type Propagator interface {
	Name() string
	Propagate(ctx context.Context, leave *models.Leave) error
}

// Fanout invokes every registered propagator after a successful commit.
// Failures are logged and swallowed: ingestion is already done, and there
// is no retry queue.
type Fanout struct {
	propagators []Propagator
	logger      *logrus.Logger
}

func NewFanout(logger *logrus.Logger, propagators ...Propagator) *Fanout {
	return &Fanout{propagators: propagators, logger: logger}
}

func (f *Fanout) Propagate(ctx context.Context, leave *models.Leave) {
	for _, p := range f.propagators {
		if err := p.Propagate(ctx, leave); err != nil {
			f.logger.WithError(err).WithFields(logrus.Fields{
				"channel":  p.Name(),
				"leave_id": leave.ID,
			}).Warn("downstream propagation failed")
		}
	}
}
