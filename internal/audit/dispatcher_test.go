package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *captureSink) Record(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(sink, zap.NewNop(), 10)

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{TenantID: 1, Action: "service_created"})
	}
	d.Close()

	if len(sink.events) != 5 {
		t.Fatalf("recorded %d events, want 5", len(sink.events))
	}

	// dispatch after close is ignored, not a panic
	d.Dispatch(Event{TenantID: 1, Action: "late"})
	d.Close()
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &captureSink{fail: true}
	d := NewDispatcher(sink, zap.NewNop(), 1)
	d.Dispatch(Event{Action: "x"})
	d.Close()
}

func TestEventToLog(t *testing.T) {
	id := uint(9)
	row := Event{
		TenantID: 3,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &id,
		Metadata: map[string]any{"name": "Cut"},
	}.ToLog()

	if row.TenantID != 3 || *row.EntityID != 9 {
		t.Fatalf("unexpected row: %+v", row)
	}

	var meta map[string]string
	if err := json.Unmarshal(row.Metadata, &meta); err != nil || meta["name"] != "Cut" {
		t.Fatalf("metadata = %s, %v", row.Metadata, err)
	}
}

func TestActorContext(t *testing.T) {
	if ActorFrom(context.Background()) != nil {
		t.Fatalf("expected no actor")
	}
	ctx := WithActor(context.Background(), 42)
	if got := ActorFrom(ctx); got == nil || *got != 42 {
		t.Fatalf("actor = %v", got)
	}
}
