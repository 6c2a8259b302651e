package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

// EligibilityEvaluator decides whether enough time has elapsed since the
// household last successfully received the package. It is read-only and
// takes no lock: inside the distribution transaction it runs before lock
// acquisition, and it is also exposed standalone for advisory probes.
type EligibilityEvaluator struct {
	Log    ports.DistributionLog
	Logger *slog.Logger
}

func (e EligibilityEvaluator) Evaluate(
	ctx context.Context,
	householdID string,
	pkg entities.PackageRef,
	asOf time.Time,
) (entities.Eligibility, error) {
	logger := ResolveLogger(e.Logger)

	last, found, err := e.Log.LastSuccess(ctx, householdID, pkg.ID)
	if err != nil {
		return entities.Eligibility{}, err
	}
	if !found {
		return entities.Eligibility{
			Eligible: true,
			Reason:   "never received this package",
		}, nil
	}

	// Calendar-day difference, not elapsed seconds: a distribution late on
	// day 0 still counts day 1 as one full day later.
	daysSince := calendarDaysBetween(last.DistributedAt, asOf)
	if daysSince >= pkg.ValidityPeriodDays {
		return entities.Eligibility{
			Eligible:      true,
			Reason:        fmt.Sprintf("last received %d days ago", daysSince),
			DaysSinceLast: &daysSince,
		}, nil
	}

	remaining := pkg.ValidityPeriodDays - daysSince
	logger.Info("eligibility check ineligible",
		"event", "eligibility_check_ineligible",
		"module", "relief-operations/distribution-engine",
		"layer", "application",
		"household_id", householdID,
		"package_id", pkg.ID,
		"days_since_last", daysSince,
		"days_remaining", remaining,
	)
	return entities.Eligibility{
		Eligible:      false,
		Reason:        fmt.Sprintf("last received %d days ago, must wait %d more days", daysSince, remaining),
		DaysSinceLast: &daysSince,
		DaysRemaining: &remaining,
	}, nil
}

func calendarDaysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
