package postgresadapter

import (
	"context"
	"time"

	"almoner/contexts/relief-operations/reporting-service/domain/entities"

	"gorm.io/gorm"
)

// ReadModel runs the reporting aggregates directly against the tables owned
// by the registry and distribution engine modules. Read-only access is the
// sanctioned exception to module table ownership.
type ReadModel struct {
	db *gorm.DB
}

func NewReadModel(db *gorm.DB) *ReadModel {
	return &ReadModel{db: db}
}

const pendingHouseholdsQuery = `
SELECT h.id, h.family_name, h.city, h.priority_level, h.registration_date
FROM households h
WHERE h.status = 'active'
  AND NOT EXISTS (
    SELECT 1 FROM distribution_records r
    WHERE r.household_id = h.id AND r.status = 'success'
  )
ORDER BY CASE h.priority_level
    WHEN 'critical' THEN 0
    WHEN 'high' THEN 1
    WHEN 'medium' THEN 2
    ELSE 3
  END,
  h.registration_date ASC
LIMIT ?`

func (m *ReadModel) Dashboard(ctx context.Context, asOf time.Time) (entities.DashboardSnapshot, error) {
	var snapshot entities.DashboardSnapshot
	counts := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&snapshot.ActiveHouseholds, `SELECT COUNT(*) FROM households WHERE status = 'active'`, nil},
		{&snapshot.TotalDistributions, `SELECT COUNT(*) FROM distribution_records WHERE status = 'success'`, nil},
		{&snapshot.ActiveCenters, `SELECT COUNT(*) FROM distribution_centers WHERE status = 'active'`, nil},
		{&snapshot.LowStockLines, `SELECT COUNT(*) FROM inventory_lines WHERE quantity_on_hand <= reorder_level`, nil},
		{&snapshot.CriticalUnserved, `SELECT COUNT(*) FROM households h
			WHERE h.status = 'active' AND h.priority_level = 'critical'
			  AND NOT EXISTS (
			    SELECT 1 FROM distribution_records r
			    WHERE r.household_id = h.id AND r.status = 'success'
			  )`, nil},
		{&snapshot.DistributionsLast7Days, `SELECT COUNT(*) FROM distribution_records
			WHERE status = 'success' AND distributed_at >= ?`, []any{asOf.AddDate(0, 0, -7)}},
	}
	for _, count := range counts {
		if err := m.db.WithContext(ctx).Raw(count.query, count.args...).Scan(count.dest).Error; err != nil {
			return entities.DashboardSnapshot{}, err
		}
	}
	snapshot.GeneratedAt = asOf
	return snapshot, nil
}

func (m *ReadModel) DistributionStatistics(ctx context.Context) ([]entities.DistributionStatistic, error) {
	var rows []struct {
		CenterID           string    `gorm:"column:center_id"`
		PackageID          string    `gorm:"column:package_id"`
		TotalDistributions int       `gorm:"column:total_distributions"`
		TotalUnits         int       `gorm:"column:total_units"`
		LastDistributionAt time.Time `gorm:"column:last_distribution_at"`
	}
	err := m.db.WithContext(ctx).Raw(`
		SELECT center_id, package_id,
		       COUNT(*) AS total_distributions,
		       COALESCE(SUM(quantity), 0) AS total_units,
		       MAX(distributed_at) AS last_distribution_at
		FROM distribution_records
		WHERE status = 'success'
		GROUP BY center_id, package_id
		ORDER BY center_id, package_id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	statistics := make([]entities.DistributionStatistic, 0, len(rows))
	for _, row := range rows {
		statistics = append(statistics, entities.DistributionStatistic{
			CenterID:           row.CenterID,
			PackageID:          row.PackageID,
			TotalDistributions: row.TotalDistributions,
			TotalUnits:         row.TotalUnits,
			LastDistributionAt: row.LastDistributionAt.UTC(),
		})
	}
	return statistics, nil
}

func (m *ReadModel) PendingHouseholds(ctx context.Context, limit int) ([]entities.PendingHousehold, error) {
	var rows []struct {
		ID               string    `gorm:"column:id"`
		FamilyName       string    `gorm:"column:family_name"`
		City             string    `gorm:"column:city"`
		PriorityLevel    string    `gorm:"column:priority_level"`
		RegistrationDate time.Time `gorm:"column:registration_date"`
	}
	if err := m.db.WithContext(ctx).Raw(pendingHouseholdsQuery, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	pending := make([]entities.PendingHousehold, 0, len(rows))
	for _, row := range rows {
		pending = append(pending, entities.PendingHousehold{
			HouseholdID:      row.ID,
			FamilyName:       row.FamilyName,
			City:             row.City,
			PriorityLevel:    row.PriorityLevel,
			RegistrationDate: row.RegistrationDate.UTC(),
		})
	}
	return pending, nil
}

func (m *ReadModel) MonthlySummary(ctx context.Context, months int) ([]entities.MonthlySummaryRow, error) {
	since := time.Now().UTC().AddDate(0, -months, 0)
	var rows []struct {
		Month             string `gorm:"column:month"`
		CenterID          string `gorm:"column:center_id"`
		DistributionCount int    `gorm:"column:distribution_count"`
		TotalUnits        int    `gorm:"column:total_units"`
	}
	err := m.db.WithContext(ctx).Raw(`
		SELECT to_char(distributed_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month,
		       center_id,
		       COUNT(*) AS distribution_count,
		       COALESCE(SUM(quantity), 0) AS total_units
		FROM distribution_records
		WHERE status = 'success' AND distributed_at >= ?
		GROUP BY month, center_id
		ORDER BY month DESC, center_id`, since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	summary := make([]entities.MonthlySummaryRow, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, entities.MonthlySummaryRow{
			Month:             row.Month,
			CenterID:          row.CenterID,
			DistributionCount: row.DistributionCount,
			TotalUnits:        row.TotalUnits,
		})
	}
	return summary, nil
}

func (m *ReadModel) InventoryStatus(ctx context.Context) ([]entities.InventoryStatusLine, error) {
	var rows []struct {
		CenterID       string `gorm:"column:center_id"`
		PackageID      string `gorm:"column:package_id"`
		QuantityOnHand int    `gorm:"column:quantity_on_hand"`
		ReorderLevel   int    `gorm:"column:reorder_level"`
	}
	err := m.db.WithContext(ctx).Raw(`
		SELECT center_id, package_id, quantity_on_hand, reorder_level
		FROM inventory_lines
		ORDER BY center_id, package_id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]entities.InventoryStatusLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, entities.InventoryStatusLine{
			CenterID:       row.CenterID,
			PackageID:      row.PackageID,
			QuantityOnHand: row.QuantityOnHand,
			ReorderLevel:   row.ReorderLevel,
			StockStatus:    entities.StockStatusFor(row.QuantityOnHand, row.ReorderLevel),
		})
	}
	return lines, nil
}
