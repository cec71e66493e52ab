package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

// AuditStore keeps audit rows apart from the catalog state so a rolled back
// transaction never discards entries written by the dispatcher.
type AuditStore struct {
	mu     sync.Mutex
	nextID uint
	rows   []models.AuditLog
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Record(ctx context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := ev.ToLog()
	s.nextID++
	row.ID = s.nextID
	row.CreatedAt = time.Now().UTC()
	s.rows = append(s.rows, row)
	return nil
}

func (s *AuditStore) List(ctx context.Context, tenantID uint, q audit.Query) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for _, row := range s.rows {
		if row.TenantID != tenantID {
			continue
		}
		if q.Action != "" && row.Action != q.Action {
			continue
		}
		if q.Entity != "" && row.Entity != q.Entity {
			continue
		}
		if q.From != nil && row.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !row.CreatedAt.Before(*q.To) {
			continue
		}
		matched = append(matched, row)
	}

	// newest first, matching the postgres store
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := q.Offset()
	if start < 0 {
		start = 0
	}
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := len(matched)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}
	return matched[start:end], total, nil
}

var _ audit.Store = (*AuditStore)(nil)
