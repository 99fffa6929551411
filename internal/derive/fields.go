package derive

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsheet/finsheet/internal/dateparse"
	"github.com/finsheet/finsheet/internal/model"
)

// Round2 rounds half away from zero to 2 decimal places, the rounding rule
// of every money-bearing derived field.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// computeBudget derives the period costs from the monthly cost. The
// monthly cost is already rounded to 2 decimals on write, so the scaled
// values need no further rounding.
func computeBudget(rec model.Record) map[string]float64 {
	monthly := rec.Number("monthlyCost")
	return map[string]float64{
		"quarterlyCost":  monthly * 3,
		"halfYearlyCost": monthly * 6,
		"annualCost":     monthly * 12,
	}
}

// computeProjectTracking derives the day-count chain and the money chain
// that hangs off it.
func computeProjectTracking(rec model.Record) map[string]float64 {
	salary := rec.Number("salary")
	resources := resourcesForRates(rec)

	days := DaysInvolved(rec.Text("startDate"), rec.Text("endedDate"))

	perDay := Round2(salary / 30)
	investDay := Round2(perDay * float64(days))
	hoursDays := float64(days) * 8 * resources
	perHrs := Round2(perDay / 8 * resources)
	pending := Round2(rec.Number("projectCost") - rec.Number("collectAmount"))
	profit := Round2(rec.Number("collectAmount") - investDay)

	return map[string]float64{
		"daysInvolved":     float64(days),
		"perDayAmount":     perDay,
		"investDayAmount":  investDay,
		"hoursDays":        hoursDays,
		"perHrsAmount":     perHrs,
		"pendingAmount":    pending,
		"profitForProject": profit,
	}
}

func computeSubscriptionRevenue(rec model.Record) map[string]float64 {
	return map[string]float64{
		"projectedAnnualRevenue": rec.Number("projectedMonthlyRevenue") * 12,
	}
}

// DaysInvolved counts the days between two DD/MM/YYYY dates inclusive of
// both endpoints. A missing or invalid date, or an end before the start,
// yields 0.
func DaysInvolved(startRaw, endRaw string) int {
	start, okStart := dateparse.Parse(startRaw)
	end, okEnd := dateparse.Parse(endRaw)
	if !okStart || !okEnd || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// resourcesForRates coerces the resources field for the day/hour math:
// absent or non-numeric means 1. Totals over the collection instead treat
// a genuinely absent value as 0; the two defaults are intentionally kept
// as the original behavior had them.
func resourcesForRates(rec model.Record) float64 {
	if !rec.Has("resources") {
		return 1
	}
	switch v := rec["resources"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 1
		}
		return f
	default:
		return 1
	}
}
