package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/homevolt/homevolt/core/model"
)

// offPeakShiftShare is the fraction of forecast consumption assumed
// movable into the off-peak window by a schedule change.
const offPeakShiftShare = 0.3

// minActionSaving drops recommendations whose savings would not be
// worth acting on; a plan with no opportunity says so instead of
// force-fitting actions.
const minActionSaving = 0.05

// RuleAdvisor is the deterministic advisor used when no external
// reasoning collaborator is configured, or as the fallback when one
// fails. It prices a peak-to-off-peak shift of part of each appliance's
// forecast consumption against the household tariff.
type RuleAdvisor struct{}

// Advise builds a plan from the payload alone. Same payload, same plan.
func (RuleAdvisor) Advise(ctx context.Context, payload DecisionPayload) (model.Plan, error) {
	_ = ctx
	p := payload.Profile

	var actions []model.PlanAction
	for _, oc := range payload.Forecasts {
		if oc.Result == nil {
			continue
		}
		shiftable := offPeakShiftShare * oc.Result.PredictedKWh
		saving := shiftable * (p.RatePeak - p.RateOffPeak)
		if shiftable < minActionSaving || saving <= 0 {
			continue
		}
		actions = append(actions, model.PlanAction{
			Appliance: oc.Appliance,
			Recommendation: fmt.Sprintf("Run outside peak hours (%s-%s) to move about %.1f kWh off-peak.",
				p.TariffPeakStart, p.TariffPeakEnd, shiftable),
			EstimatedKWhSaving:  round2(shiftable),
			EstimatedCostSaving: round2(saving),
			Currency:            p.Currency,
		})
	}
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].EstimatedCostSaving > actions[j].EstimatedCostSaving
	})

	w := payload.Weather
	summary := fmt.Sprintf("Tomorrow (%s) looks %s with temperatures between %.1f°C and %.1f°C.",
		w.Date, describeCondition(w.Condition), w.TempLow, w.TempHigh)
	if len(actions) == 0 {
		summary += " No meaningful savings opportunity was found for tomorrow."
	}
	return model.Plan{Summary: summary, Actions: actions}, nil
}

func describeCondition(condition string) string {
	if condition == "" || condition == "Unknown" {
		return "uncertain"
	}
	return condition
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
