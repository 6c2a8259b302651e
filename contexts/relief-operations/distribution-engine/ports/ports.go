package ports

import (
	"context"
	"time"

	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	"almoner/internal/shared/events"
	"almoner/internal/shared/outbox"
)

// ReferenceStore resolves read-only projections of registry-owned entities.
// Lookups are unlocked and may be slightly stale; the in-lock stock re-check
// is the authoritative one.
type ReferenceStore interface {
	GetHouseholdRef(ctx context.Context, householdID string) (entities.HouseholdRef, error)
	GetPackageRef(ctx context.Context, packageID string) (entities.PackageRef, error)
	GetCenterRef(ctx context.Context, centerID string) (entities.CenterRef, error)
}

type RecordFilter struct {
	HouseholdID string
	CenterID    string
	Status      entities.RecordStatus
	Offset      int
	Limit       int
}

// DistributionLog reads the append-only audit trail. Writes happen only
// through LineTx.AppendRecord so they commit atomically with the debit.
type DistributionLog interface {
	// LastSuccess returns the most recent success record for the pair,
	// ordered by distribution time descending with higher record id
	// breaking timestamp ties.
	LastSuccess(ctx context.Context, householdID, packageID string) (entities.DistributionRecord, bool, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]entities.DistributionRecord, error)
}

type InventoryFilter struct {
	CenterID     string
	LowStockOnly bool
	Offset       int
	Limit        int
}

// LineTx is the handle to an exclusively held inventory line. Mutations and
// appended rows are staged and applied atomically when the enclosing
// critical section returns nil; any error discards everything.
type LineTx interface {
	Line() entities.InventoryLine
	// Decrement fails with an InsufficientStockError when it would take the
	// line below zero, leaving the staged line unchanged.
	Decrement(quantity int) error
	Increment(quantity int, restockedAt time.Time)
	AppendRecord(record entities.DistributionRecord)
	AppendEvent(event EventEnvelope)
}

// InventoryLedger is the exclusive-access gateway to inventory lines, the
// sole serialization point of the engine. Concurrent sections over different
// (center, package) keys never block each other.
type InventoryLedger interface {
	WithLockedLine(ctx context.Context, centerID, packageID string, fn func(LineTx) error) error
	// CreateLine inserts a new line plus seed events atomically, failing
	// with ErrLineExists when the (center, package) uniqueness invariant is
	// already satisfied by a concurrent writer.
	CreateLine(ctx context.Context, line entities.InventoryLine, seed []EventEnvelope) error
	GetLine(ctx context.Context, centerID, packageID string) (entities.InventoryLine, error)
	ListLines(ctx context.Context, filter InventoryFilter) ([]entities.InventoryLine, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope reuses the shared event shape.
type EventEnvelope = events.Envelope

// OutboxMessage reuses the shared outbox row shape.
type OutboxMessage = outbox.Message

// OutboxRepository models worker-side outbox polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
