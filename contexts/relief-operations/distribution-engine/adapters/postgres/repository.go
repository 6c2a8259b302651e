package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
	"almoner/contexts/relief-operations/distribution-engine/ports"
	"almoner/internal/shared/outbox"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements the engine ports against postgres. The inventory
// ledger relies on row locks (SELECT ... FOR UPDATE) scoped to the
// (center_id, package_id) line, with lock_timeout bounding the wait.
type Repository struct {
	db       *gorm.DB
	lockWait time.Duration
	logger   *slog.Logger
}

func NewRepository(db *gorm.DB, lockWait time.Duration, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:       db,
		lockWait: lockWait,
		logger:   logger,
	}
}

// ReferenceStore
//
// These are read-only projection lookups into registry-owned tables; the
// engine never writes them.

func (r *Repository) GetHouseholdRef(ctx context.Context, householdID string) (entities.HouseholdRef, error) {
	var row householdRefModel
	err := r.db.WithContext(ctx).
		Select("id", "status").
		Where("id = ?", householdID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.HouseholdRef{}, domainerrors.ErrHouseholdNotFound
		}
		return entities.HouseholdRef{}, r.logError("engine_repo_get_household_ref_failed", err, "household_id", householdID)
	}
	return entities.HouseholdRef{ID: row.ID, Status: entities.HouseholdStatus(row.Status)}, nil
}

func (r *Repository) GetPackageRef(ctx context.Context, packageID string) (entities.PackageRef, error) {
	var row packageRefModel
	err := r.db.WithContext(ctx).
		Select("id", "is_active", "validity_period_days").
		Where("id = ?", packageID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PackageRef{}, domainerrors.ErrPackageNotFound
		}
		return entities.PackageRef{}, r.logError("engine_repo_get_package_ref_failed", err, "package_id", packageID)
	}
	return entities.PackageRef{
		ID:                 row.ID,
		IsActive:           row.IsActive,
		ValidityPeriodDays: row.ValidityPeriodDays,
	}, nil
}

func (r *Repository) GetCenterRef(ctx context.Context, centerID string) (entities.CenterRef, error) {
	var row centerRefModel
	err := r.db.WithContext(ctx).
		Select("id", "status").
		Where("id = ?", centerID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CenterRef{}, domainerrors.ErrCenterNotFound
		}
		return entities.CenterRef{}, r.logError("engine_repo_get_center_ref_failed", err, "center_id", centerID)
	}
	return entities.CenterRef{ID: row.ID, Status: entities.CenterStatus(row.Status)}, nil
}

// InventoryLedger

func (r *Repository) WithLockedLine(
	ctx context.Context,
	centerID, packageID string,
	fn func(ports.LineTx) error,
) error {
	// Once the critical section starts it runs to commit or abort; detach
	// from caller cancellation so the lock is never abandoned mid-apply.
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.lockWait > 0 {
			// SET LOCAL takes no bind parameters; the value is formatted
			// from a configured duration, never from request input.
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockWait.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}

		var row inventoryLineModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("center_id = ? AND package_id = ?", centerID, packageID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrLineNotFound
			}
			return err
		}

		ltx := &lineTx{line: row.toEntity()}
		if err := fn(ltx); err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"quantity_on_hand":      ltx.line.QuantityOnHand,
			"reorder_level":         ltx.line.ReorderLevel,
			"last_restock_date":     ltx.line.LastRestockDate,
			"last_restock_quantity": ltx.line.LastRestockQuantity,
			"updated_at":            now,
		}
		if err := tx.Model(&inventoryLineModel{}).
			Where("id = ?", ltx.line.ID).
			Updates(updates).
			Error; err != nil {
			return err
		}

		for _, record := range ltx.records {
			recordRow := recordModelFromEntity(record)
			if err := tx.Create(&recordRow).Error; err != nil {
				return err
			}
		}
		for _, event := range ltx.events {
			outboxRow, err := outboxModelFromEvent(event, now)
			if err != nil {
				return err
			}
			if err := tx.Create(&outboxRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && isLockTimeout(err) {
		r.logger.Warn("inventory line lock wait timed out",
			"event", "engine_repo_lock_timeout",
			"module", "relief-operations/distribution-engine",
			"layer", "adapter",
			"center_id", centerID,
			"package_id", packageID,
			"lock_wait_ms", r.lockWait.Milliseconds(),
		)
		return domainerrors.ErrLockTimeout
	}
	return err
}

func (r *Repository) CreateLine(ctx context.Context, line entities.InventoryLine, seed []ports.EventEnvelope) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := lineModelFromEntity(line)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, event := range seed {
			outboxRow, err := outboxModelFromEvent(event, now)
			if err != nil {
				return err
			}
			if err := tx.Create(&outboxRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrLineExists
		}
		return r.logError("engine_repo_create_line_failed", err,
			"center_id", line.CenterID,
			"package_id", line.PackageID,
		)
	}
	return nil
}

func (r *Repository) GetLine(ctx context.Context, centerID, packageID string) (entities.InventoryLine, error) {
	var row inventoryLineModel
	err := r.db.WithContext(ctx).
		Where("center_id = ? AND package_id = ?", centerID, packageID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.InventoryLine{}, domainerrors.ErrLineNotFound
		}
		return entities.InventoryLine{}, r.logError("engine_repo_get_line_failed", err,
			"center_id", centerID,
			"package_id", packageID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListLines(ctx context.Context, filter ports.InventoryFilter) ([]entities.InventoryLine, error) {
	query := r.db.WithContext(ctx).Model(&inventoryLineModel{})
	if filter.CenterID != "" {
		query = query.Where("center_id = ?", filter.CenterID)
	}
	if filter.LowStockOnly {
		query = query.Where("quantity_on_hand <= reorder_level")
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var rows []inventoryLineModel
	if err := query.
		Order("center_id ASC, package_id ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("engine_repo_list_lines_failed", err, "center_id", filter.CenterID)
	}
	lines := make([]entities.InventoryLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.toEntity())
	}
	return lines, nil
}

// DistributionLog

func (r *Repository) LastSuccess(ctx context.Context, householdID, packageID string) (entities.DistributionRecord, bool, error) {
	var row distributionRecordModel
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Where("package_id = ?", packageID).
		Where("status = ?", string(entities.RecordStatusSuccess)).
		Order("distributed_at DESC, seq DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DistributionRecord{}, false, nil
		}
		return entities.DistributionRecord{}, false, r.logError("engine_repo_last_success_failed", err,
			"household_id", householdID,
			"package_id", packageID,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListRecords(ctx context.Context, filter ports.RecordFilter) ([]entities.DistributionRecord, error) {
	query := r.db.WithContext(ctx).Model(&distributionRecordModel{})
	if filter.HouseholdID != "" {
		query = query.Where("household_id = ?", filter.HouseholdID)
	}
	if filter.CenterID != "" {
		query = query.Where("center_id = ?", filter.CenterID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var rows []distributionRecordModel
	if err := query.
		Order("distributed_at DESC, seq DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("engine_repo_list_records_failed", err,
			"household_id", filter.HouseholdID,
			"center_id", filter.CenterID,
		)
	}
	records := make([]entities.DistributionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toEntity())
	}
	return records, nil
}

// OutboxRepository

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []engineOutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("engine_repo_list_pending_outbox_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			ID:          row.ID,
			EventType:   row.EventType,
			Payload:     row.Payload,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
			PublishedAt: row.PublishedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&engineOutboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		}).
		Error
	if err != nil {
		return r.logError("engine_repo_mark_outbox_published_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "relief-operations/distribution-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("engine repository operation failed", fields...)
	return err
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

type householdRefModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	Status string `gorm:"column:status"`
}

func (householdRefModel) TableName() string {
	return "households"
}

type packageRefModel struct {
	ID                 string `gorm:"column:id;primaryKey"`
	IsActive           bool   `gorm:"column:is_active"`
	ValidityPeriodDays int    `gorm:"column:validity_period_days"`
}

func (packageRefModel) TableName() string {
	return "aid_packages"
}

type centerRefModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	Status string `gorm:"column:status"`
}

func (centerRefModel) TableName() string {
	return "distribution_centers"
}

type inventoryLineModel struct {
	ID                  string     `gorm:"column:id;primaryKey"`
	CenterID            string     `gorm:"column:center_id"`
	PackageID           string     `gorm:"column:package_id"`
	QuantityOnHand      int        `gorm:"column:quantity_on_hand"`
	ReorderLevel        int        `gorm:"column:reorder_level"`
	LastRestockDate     *time.Time `gorm:"column:last_restock_date"`
	LastRestockQuantity int        `gorm:"column:last_restock_quantity"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (inventoryLineModel) TableName() string {
	return "inventory_lines"
}

func (m inventoryLineModel) toEntity() entities.InventoryLine {
	return entities.InventoryLine{
		ID:                  m.ID,
		CenterID:            m.CenterID,
		PackageID:           m.PackageID,
		QuantityOnHand:      m.QuantityOnHand,
		ReorderLevel:        m.ReorderLevel,
		LastRestockDate:     m.LastRestockDate,
		LastRestockQuantity: m.LastRestockQuantity,
		UpdatedAt:           m.UpdatedAt,
	}
}

func lineModelFromEntity(line entities.InventoryLine) inventoryLineModel {
	return inventoryLineModel{
		ID:                  line.ID,
		CenterID:            line.CenterID,
		PackageID:           line.PackageID,
		QuantityOnHand:      line.QuantityOnHand,
		ReorderLevel:        line.ReorderLevel,
		LastRestockDate:     line.LastRestockDate,
		LastRestockQuantity: line.LastRestockQuantity,
		UpdatedAt:           line.UpdatedAt,
	}
}

type distributionRecordModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Seq           int64     `gorm:"column:seq;->"` // bigserial, breaks timestamp ties
	HouseholdID   string    `gorm:"column:household_id"`
	PackageID     string    `gorm:"column:package_id"`
	CenterID      string    `gorm:"column:center_id"`
	StaffID       *string   `gorm:"column:staff_id"`
	Quantity      int       `gorm:"column:quantity"`
	DistributedAt time.Time `gorm:"column:distributed_at"`
	Status        string    `gorm:"column:status"`
	FailureReason string    `gorm:"column:failure_reason"`
	Notes         string    `gorm:"column:notes"`
}

func (distributionRecordModel) TableName() string {
	return "distribution_records"
}

func (m distributionRecordModel) toEntity() entities.DistributionRecord {
	staffID := ""
	if m.StaffID != nil {
		staffID = *m.StaffID
	}
	return entities.DistributionRecord{
		ID:            m.ID,
		HouseholdID:   m.HouseholdID,
		PackageID:     m.PackageID,
		CenterID:      m.CenterID,
		StaffID:       staffID,
		Quantity:      m.Quantity,
		DistributedAt: m.DistributedAt,
		Status:        entities.RecordStatus(m.Status),
		FailureReason: m.FailureReason,
		Notes:         m.Notes,
	}
}

func recordModelFromEntity(record entities.DistributionRecord) distributionRecordModel {
	var staffID *string
	if record.StaffID != "" {
		value := record.StaffID
		staffID = &value
	}
	return distributionRecordModel{
		ID:            record.ID,
		HouseholdID:   record.HouseholdID,
		PackageID:     record.PackageID,
		CenterID:      record.CenterID,
		StaffID:       staffID,
		Quantity:      record.Quantity,
		DistributedAt: record.DistributedAt,
		Status:        string(record.Status),
		FailureReason: record.FailureReason,
		Notes:         record.Notes,
	}
}

type engineOutboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (engineOutboxModel) TableName() string {
	return "distribution_outbox"
}

func outboxModelFromEvent(event ports.EventEnvelope, now time.Time) (engineOutboxModel, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return engineOutboxModel{}, err
	}
	return engineOutboxModel{
		ID:        uuid.NewString(),
		EventType: event.EventType,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: now,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "55P03"
}
