package workers

import (
	"context"
	"errors"
	"testing"

	"almoner/contexts/relief-operations/distribution-engine/adapters/memory"
	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   bool
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store) {
	t.Helper()
	err := store.WithLockedLine(context.Background(), "ctr-1", "pkg-1", func(tx ports.LineTx) error {
		tx.AppendEvent(ports.EventEnvelope{
			EventID:   "evt-1",
			EventType: "aid.distributed",
			EntityID:  "rec-1",
		})
		return nil
	})
	if err != nil {
		t.Fatalf("seed outbox: %v", err)
	}
}

func TestRunOncePublishesAndMarksPending(t *testing.T) {
	store := memory.NewStore(memory.Seed{
		Lines: []entities.InventoryLine{{ID: "line-1", CenterID: "ctr-1", PackageID: "pkg-1", QuantityOnHand: 5}},
	})
	seedOutbox(t, store)
	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(publisher.events) != 1 || publisher.topics[0] != "aid.distributed" {
		t.Fatalf("unexpected publishes %+v", publisher.topics)
	}
	if publisher.events[0].EventID != "evt-1" {
		t.Fatalf("unexpected envelope %+v", publisher.events[0])
	}

	pending, _ := store.ListPendingOutbox(context.Background(), 0)
	if len(pending) != 0 {
		t.Fatalf("published rows must leave the pending set, got %d", len(pending))
	}

	// A second pass over an empty outbox is a no-op.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("idle run once: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected no duplicate publishes, got %d", len(publisher.events))
	}
}

func TestRunOnceLeavesRowPendingOnPublishFailure(t *testing.T) {
	store := memory.NewStore(memory.Seed{
		Lines: []entities.InventoryLine{{ID: "line-1", CenterID: "ctr-1", PackageID: "pkg-1", QuantityOnHand: 5}},
	})
	seedOutbox(t, store)
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: &capturingPublisher{fail: true},
	}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure to surface")
	}
	pending, _ := store.ListPendingOutbox(context.Background(), 0)
	if len(pending) != 1 {
		t.Fatalf("failed rows must stay pending for retry, got %d", len(pending))
	}
}
