package application

import (
	"context"
	"testing"
	"time"

	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

type stubLog struct {
	record entities.DistributionRecord
	found  bool
}

func (s stubLog) LastSuccess(_ context.Context, _, _ string) (entities.DistributionRecord, bool, error) {
	return s.record, s.found, nil
}

func (s stubLog) ListRecords(_ context.Context, _ ports.RecordFilter) ([]entities.DistributionRecord, error) {
	return nil, nil
}

func TestEvaluateNeverReceived(t *testing.T) {
	evaluator := EligibilityEvaluator{Log: stubLog{}}
	pkg := entities.PackageRef{ID: "pkg-1", IsActive: true, ValidityPeriodDays: 30}

	eligibility, err := evaluator.Evaluate(context.Background(), "hh-1", pkg, time.Now().UTC())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !eligibility.Eligible || eligibility.Reason != "never received this package" {
		t.Fatalf("unexpected eligibility %+v", eligibility)
	}
	if eligibility.DaysSinceLast != nil || eligibility.DaysRemaining != nil {
		t.Fatalf("expected no day counters, got %+v", eligibility)
	}
}

func TestEvaluateStepFunctionAtValidityBoundary(t *testing.T) {
	lastAt := time.Date(2026, time.January, 1, 23, 45, 0, 0, time.UTC)
	pkg := entities.PackageRef{ID: "pkg-1", IsActive: true, ValidityPeriodDays: 30}
	evaluator := EligibilityEvaluator{Log: stubLog{
		record: entities.DistributionRecord{
			HouseholdID:   "hh-1",
			PackageID:     "pkg-1",
			DistributedAt: lastAt,
			Status:        entities.RecordStatusSuccess,
		},
		found: true,
	}}

	cases := []struct {
		daysLater     int
		wantEligible  bool
		wantRemaining int
	}{
		{daysLater: 0, wantEligible: false, wantRemaining: 30},
		{daysLater: 29, wantEligible: false, wantRemaining: 1},
		{daysLater: 30, wantEligible: true},
		{daysLater: 31, wantEligible: true},
	}
	for _, tc := range cases {
		asOf := lastAt.AddDate(0, 0, tc.daysLater)
		eligibility, err := evaluator.Evaluate(context.Background(), "hh-1", pkg, asOf)
		if err != nil {
			t.Fatalf("day %d: evaluate: %v", tc.daysLater, err)
		}
		if eligibility.Eligible != tc.wantEligible {
			t.Fatalf("day %d: expected eligible=%v, got %+v", tc.daysLater, tc.wantEligible, eligibility)
		}
		if eligibility.DaysSinceLast == nil || *eligibility.DaysSinceLast != tc.daysLater {
			t.Fatalf("day %d: unexpected days since last %+v", tc.daysLater, eligibility.DaysSinceLast)
		}
		if !tc.wantEligible {
			if eligibility.DaysRemaining == nil || *eligibility.DaysRemaining != tc.wantRemaining {
				t.Fatalf("day %d: unexpected days remaining %+v", tc.daysLater, eligibility.DaysRemaining)
			}
		}
	}
}

func TestEvaluateUsesCalendarDaysNotElapsedHours(t *testing.T) {
	// Late on day 0 to early on day 1 is under two hours of wall time but
	// counts as one calendar day.
	lastAt := time.Date(2026, time.January, 1, 23, 45, 0, 0, time.UTC)
	asOf := time.Date(2026, time.January, 2, 0, 30, 0, 0, time.UTC)
	pkg := entities.PackageRef{ID: "pkg-1", IsActive: true, ValidityPeriodDays: 2}
	evaluator := EligibilityEvaluator{Log: stubLog{
		record: entities.DistributionRecord{DistributedAt: lastAt, Status: entities.RecordStatusSuccess},
		found:  true,
	}}

	eligibility, err := evaluator.Evaluate(context.Background(), "hh-1", pkg, asOf)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eligibility.Eligible {
		t.Fatalf("expected ineligible, got %+v", eligibility)
	}
	if eligibility.DaysSinceLast == nil || *eligibility.DaysSinceLast != 1 {
		t.Fatalf("expected one calendar day since last, got %+v", eligibility.DaysSinceLast)
	}
}
