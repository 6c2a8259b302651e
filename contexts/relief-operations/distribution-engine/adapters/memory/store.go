package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
	"almoner/contexts/relief-operations/distribution-engine/ports"
	"almoner/internal/shared/outbox"

	"github.com/google/uuid"
)

const defaultLockWait = 5 * time.Second

type Seed struct {
	Households []entities.HouseholdRef
	Packages   []entities.PackageRef
	Centers    []entities.CenterRef
	Lines      []entities.InventoryLine
	Records    []entities.DistributionRecord
}

// Store implements every engine port in memory. It backs tests and the
// in-memory module build, and mirrors the postgres adapter's semantics:
// per-(center, package) mutual exclusion with a bounded lock wait, and
// commit-or-discard application of staged mutations.
type Store struct {
	mu sync.RWMutex

	households map[string]entities.HouseholdRef
	packages   map[string]entities.PackageRef
	centers    map[string]entities.CenterRef
	lines      map[string]entities.InventoryLine
	records    []entities.DistributionRecord
	outbox     []ports.OutboxMessage

	lockMu sync.Mutex
	locks  map[string]chan struct{}

	// LockWait bounds how long WithLockedLine blocks on a held key before
	// failing with ErrLockTimeout. Zero means the default.
	LockWait time.Duration
}

func NewStore(seed Seed) *Store {
	s := &Store{
		households: make(map[string]entities.HouseholdRef, len(seed.Households)),
		packages:   make(map[string]entities.PackageRef, len(seed.Packages)),
		centers:    make(map[string]entities.CenterRef, len(seed.Centers)),
		lines:      make(map[string]entities.InventoryLine, len(seed.Lines)),
		locks:      make(map[string]chan struct{}),
	}
	for _, h := range seed.Households {
		s.households[h.ID] = h
	}
	for _, p := range seed.Packages {
		s.packages[p.ID] = p
	}
	for _, c := range seed.Centers {
		s.centers[c.ID] = c
	}
	for _, line := range seed.Lines {
		s.lines[lineKey(line.CenterID, line.PackageID)] = line
	}
	s.records = append(s.records, seed.Records...)
	return s
}

func lineKey(centerID, packageID string) string {
	return centerID + "/" + packageID
}

// ReferenceStore

func (s *Store) GetHouseholdRef(_ context.Context, householdID string) (entities.HouseholdRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	household, ok := s.households[householdID]
	if !ok {
		return entities.HouseholdRef{}, domainerrors.ErrHouseholdNotFound
	}
	return household, nil
}

func (s *Store) GetPackageRef(_ context.Context, packageID string) (entities.PackageRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pkg, ok := s.packages[packageID]
	if !ok {
		return entities.PackageRef{}, domainerrors.ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Store) GetCenterRef(_ context.Context, centerID string) (entities.CenterRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	center, ok := s.centers[centerID]
	if !ok {
		return entities.CenterRef{}, domainerrors.ErrCenterNotFound
	}
	return center, nil
}

// InventoryLedger

func (s *Store) WithLockedLine(
	ctx context.Context,
	centerID, packageID string,
	fn func(ports.LineTx) error,
) error {
	key := lineKey(centerID, packageID)
	lock := s.keyLock(key)

	wait := s.LockWait
	if wait <= 0 {
		wait = defaultLockWait
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return domainerrors.ErrLockTimeout
	}
	defer func() { <-lock }()

	s.mu.RLock()
	line, ok := s.lines[key]
	s.mu.RUnlock()
	if !ok {
		return domainerrors.ErrLineNotFound
	}

	tx := &lineTx{line: line}
	if err := fn(tx); err != nil {
		return err
	}

	tx.line.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[key] = tx.line
	s.records = append(s.records, tx.records...)
	for _, event := range tx.events {
		s.appendOutboxLocked(event)
	}
	return nil
}

func (s *Store) CreateLine(_ context.Context, line entities.InventoryLine, seed []ports.EventEnvelope) error {
	key := lineKey(line.CenterID, line.PackageID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.lines[key]; exists {
		return domainerrors.ErrLineExists
	}
	s.lines[key] = line
	for _, event := range seed {
		s.appendOutboxLocked(event)
	}
	return nil
}

func (s *Store) GetLine(_ context.Context, centerID, packageID string) (entities.InventoryLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	line, ok := s.lines[lineKey(centerID, packageID)]
	if !ok {
		return entities.InventoryLine{}, domainerrors.ErrLineNotFound
	}
	return line, nil
}

func (s *Store) ListLines(_ context.Context, filter ports.InventoryFilter) ([]entities.InventoryLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]entities.InventoryLine, 0, len(s.lines))
	for _, line := range s.lines {
		if filter.CenterID != "" && line.CenterID != filter.CenterID {
			continue
		}
		if filter.LowStockOnly && !line.LowStock() {
			continue
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].CenterID == lines[j].CenterID {
			return lines[i].PackageID < lines[j].PackageID
		}
		return lines[i].CenterID < lines[j].CenterID
	})
	return paginate(lines, filter.Offset, filter.Limit), nil
}

func (s *Store) keyLock(key string) chan struct{} {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = make(chan struct{}, 1)
		s.locks[key] = lock
	}
	return lock
}

// DistributionLog

func (s *Store) LastSuccess(_ context.Context, householdID, packageID string) (entities.DistributionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last entities.DistributionRecord
	found := false
	// Later append order stands in for higher log id on timestamp ties, so
	// a >= comparison scanning forward keeps the newest row.
	for _, record := range s.records {
		if record.HouseholdID != householdID || record.PackageID != packageID {
			continue
		}
		if record.Status != entities.RecordStatusSuccess {
			continue
		}
		if !found || !record.DistributedAt.Before(last.DistributedAt) {
			last = record
			found = true
		}
	}
	return last, found, nil
}

func (s *Store) ListRecords(_ context.Context, filter ports.RecordFilter) ([]entities.DistributionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]entities.DistributionRecord, 0, len(s.records))
	for _, record := range s.records {
		if filter.HouseholdID != "" && record.HouseholdID != filter.HouseholdID {
			continue
		}
		if filter.CenterID != "" && record.CenterID != filter.CenterID {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DistributedAt.After(records[j].DistributedAt)
	})
	return paginate(records, filter.Offset, filter.Limit), nil
}

// OutboxRepository

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0, limit)
	for _, message := range s.outbox {
		if message.Status != outbox.StatusPending {
			continue
		}
		pending = append(pending, message)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].ID == outboxID {
			s.outbox[i].Status = outbox.StatusPublished
			at := publishedAt
			s.outbox[i].PublishedAt = &at
			return nil
		}
	}
	return nil
}

func (s *Store) appendOutboxLocked(event ports.EventEnvelope) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	s.outbox = append(s.outbox, ports.OutboxMessage{
		ID:        uuid.NewString(),
		EventType: event.EventType,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: time.Now().UTC(),
	})
}

// Clock / IDGenerator

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type lineTx struct {
	line    entities.InventoryLine
	records []entities.DistributionRecord
	events  []ports.EventEnvelope
}

func (t *lineTx) Line() entities.InventoryLine {
	return t.line
}

func (t *lineTx) Decrement(quantity int) error {
	return t.line.Debit(quantity)
}

func (t *lineTx) Increment(quantity int, restockedAt time.Time) {
	t.line.Credit(quantity, restockedAt)
}

func (t *lineTx) AppendRecord(record entities.DistributionRecord) {
	t.records = append(t.records, record)
}

func (t *lineTx) AppendEvent(event ports.EventEnvelope) {
	t.events = append(t.events, event)
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
