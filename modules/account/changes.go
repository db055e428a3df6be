package account

import (
	"context"

	"github.com/dmitrymomot/formflow/pkg/broadcast"
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/logger"
)

const changeBuffer = 16

// Change announces that a session's state moved: a status transition, an
// edit, a rejected submit or a password toggle. Closed marks an unmount.
type Change struct {
	Session string      `json:"session"`
	Status  form.Status `json:"status"`
	Closed  bool        `json:"closed,omitempty"`
}

// Subscribe follows the changes of every session until ctx is done or the
// service closes. Slow subscribers miss changes instead of blocking forms.
func (s *Service) Subscribe(ctx context.Context) broadcast.Subscriber[Change] {
	return s.changes.Subscribe(ctx)
}

func (s *Service) publish(ctx context.Context, change Change) {
	if err := s.changes.Broadcast(context.WithoutCancel(ctx), change); err != nil {
		s.log.DebugContext(ctx, "state change dropped", logger.SessionID(change.Session), logger.Error(err))
	}
}

func (s *Service) touched(id string, sess session) {
	s.publish(context.Background(), Change{Session: id, Status: sess.status()})
}
