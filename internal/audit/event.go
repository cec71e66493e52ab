package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

type Event struct {
	TenantID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// ToLog renders the event as a row. Metadata that cannot be encoded is
// dropped rather than failing the write.
func (ev Event) ToLog() models.AuditLog {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = datatypes.JSON(b)
		}
	}

	return models.AuditLog{
		TenantID: ev.TenantID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}
}

type Query struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Sink receives dispatched events.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

type Store interface {
	Sink
	List(ctx context.Context, tenantID uint, q Query) ([]models.AuditLog, int64, error)
}

type actorKey struct{}

func WithActor(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func ActorFrom(ctx context.Context) *uint {
	if id, ok := ctx.Value(actorKey{}).(uint); ok {
		return &id
	}
	return nil
}
