package memory

import (
	"context"
	"sort"
	"time"

	"almoner/contexts/relief-operations/reporting-service/domain/entities"
)

// Row types mirror the columns the postgres read model scans, so tests can
// seed the same shapes the aggregates run over.

type HouseholdRow struct {
	ID               string
	FamilyName       string
	City             string
	PriorityLevel    string
	Status           string
	RegistrationDate time.Time
}

type CenterRow struct {
	ID     string
	Status string
}

type LineRow struct {
	CenterID       string
	PackageID      string
	QuantityOnHand int
	ReorderLevel   int
}

type RecordRow struct {
	HouseholdID   string
	CenterID      string
	PackageID     string
	Quantity      int
	Status        string
	DistributedAt time.Time
}

type Seed struct {
	Households []HouseholdRow
	Centers    []CenterRow
	Lines      []LineRow
	Records    []RecordRow
}

// ReadModel computes the reporting aggregates over seeded rows in memory.
type ReadModel struct {
	seed Seed
}

func NewReadModel(seed Seed) *ReadModel {
	return &ReadModel{seed: seed}
}

func (m *ReadModel) Now() time.Time {
	return time.Now().UTC()
}

func (m *ReadModel) successRecords() []RecordRow {
	records := make([]RecordRow, 0, len(m.seed.Records))
	for _, record := range m.seed.Records {
		if record.Status == "success" {
			records = append(records, record)
		}
	}
	return records
}

func (m *ReadModel) servedHouseholds() map[string]bool {
	served := make(map[string]bool)
	for _, record := range m.successRecords() {
		served[record.HouseholdID] = true
	}
	return served
}

func (m *ReadModel) Dashboard(_ context.Context, asOf time.Time) (entities.DashboardSnapshot, error) {
	snapshot := entities.DashboardSnapshot{GeneratedAt: asOf}
	served := m.servedHouseholds()
	for _, household := range m.seed.Households {
		if household.Status != "active" {
			continue
		}
		snapshot.ActiveHouseholds++
		if household.PriorityLevel == "critical" && !served[household.ID] {
			snapshot.CriticalUnserved++
		}
	}
	for _, center := range m.seed.Centers {
		if center.Status == "active" {
			snapshot.ActiveCenters++
		}
	}
	for _, line := range m.seed.Lines {
		if line.QuantityOnHand <= line.ReorderLevel {
			snapshot.LowStockLines++
		}
	}
	weekAgo := asOf.AddDate(0, 0, -7)
	for _, record := range m.successRecords() {
		snapshot.TotalDistributions++
		if !record.DistributedAt.Before(weekAgo) {
			snapshot.DistributionsLast7Days++
		}
	}
	return snapshot, nil
}

func (m *ReadModel) DistributionStatistics(_ context.Context) ([]entities.DistributionStatistic, error) {
	byPair := make(map[[2]string]*entities.DistributionStatistic)
	for _, record := range m.successRecords() {
		key := [2]string{record.CenterID, record.PackageID}
		stat, ok := byPair[key]
		if !ok {
			stat = &entities.DistributionStatistic{CenterID: record.CenterID, PackageID: record.PackageID}
			byPair[key] = stat
		}
		stat.TotalDistributions++
		stat.TotalUnits += record.Quantity
		if record.DistributedAt.After(stat.LastDistributionAt) {
			stat.LastDistributionAt = record.DistributedAt
		}
	}
	statistics := make([]entities.DistributionStatistic, 0, len(byPair))
	for _, stat := range byPair {
		statistics = append(statistics, *stat)
	}
	sort.Slice(statistics, func(i, j int) bool {
		if statistics[i].CenterID == statistics[j].CenterID {
			return statistics[i].PackageID < statistics[j].PackageID
		}
		return statistics[i].CenterID < statistics[j].CenterID
	})
	return statistics, nil
}

func priorityRank(priority string) int {
	switch priority {
	case "critical":
		return 0
	case "high":
		return 1
	case "medium":
		return 2
	default:
		return 3
	}
}

func (m *ReadModel) PendingHouseholds(_ context.Context, limit int) ([]entities.PendingHousehold, error) {
	served := m.servedHouseholds()
	pending := make([]entities.PendingHousehold, 0)
	for _, household := range m.seed.Households {
		if household.Status != "active" || served[household.ID] {
			continue
		}
		pending = append(pending, entities.PendingHousehold{
			HouseholdID:      household.ID,
			FamilyName:       household.FamilyName,
			City:             household.City,
			PriorityLevel:    household.PriorityLevel,
			RegistrationDate: household.RegistrationDate,
		})
	}
	sort.SliceStable(pending, func(i, j int) bool {
		ranki, rankj := priorityRank(pending[i].PriorityLevel), priorityRank(pending[j].PriorityLevel)
		if ranki == rankj {
			return pending[i].RegistrationDate.Before(pending[j].RegistrationDate)
		}
		return ranki < rankj
	})
	if limit > 0 && limit < len(pending) {
		pending = pending[:limit]
	}
	return pending, nil
}

func (m *ReadModel) MonthlySummary(_ context.Context, months int) ([]entities.MonthlySummaryRow, error) {
	since := time.Now().UTC().AddDate(0, -months, 0)
	type key struct {
		month    string
		centerID string
	}
	byKey := make(map[key]*entities.MonthlySummaryRow)
	for _, record := range m.successRecords() {
		if record.DistributedAt.Before(since) {
			continue
		}
		k := key{month: record.DistributedAt.UTC().Format("2006-01"), centerID: record.CenterID}
		row, ok := byKey[k]
		if !ok {
			row = &entities.MonthlySummaryRow{Month: k.month, CenterID: k.centerID}
			byKey[k] = row
		}
		row.DistributionCount++
		row.TotalUnits += record.Quantity
	}
	summary := make([]entities.MonthlySummaryRow, 0, len(byKey))
	for _, row := range byKey {
		summary = append(summary, *row)
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Month == summary[j].Month {
			return summary[i].CenterID < summary[j].CenterID
		}
		return summary[i].Month > summary[j].Month
	})
	return summary, nil
}

func (m *ReadModel) InventoryStatus(_ context.Context) ([]entities.InventoryStatusLine, error) {
	lines := make([]entities.InventoryStatusLine, 0, len(m.seed.Lines))
	for _, line := range m.seed.Lines {
		lines = append(lines, entities.InventoryStatusLine{
			CenterID:       line.CenterID,
			PackageID:      line.PackageID,
			QuantityOnHand: line.QuantityOnHand,
			ReorderLevel:   line.ReorderLevel,
			StockStatus:    entities.StockStatusFor(line.QuantityOnHand, line.ReorderLevel),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].CenterID == lines[j].CenterID {
			return lines[i].PackageID < lines[j].PackageID
		}
		return lines[i].CenterID < lines[j].CenterID
	})
	return lines, nil
}
