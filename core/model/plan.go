package model

// PlanAction is one appliance-level savings recommendation.
type PlanAction struct {
	Appliance           string  `json:"appliance"`
	Recommendation      string  `json:"recommendation"`
	EstimatedKWhSaving  float64 `json:"estimated_kwh_saving"`
	EstimatedCostSaving float64 `json:"estimated_cost_saving"`
	Currency            string  `json:"currency"`
}

// Plan is the savings plan returned to the caller and, optionally,
// delivered by email or published over MQTT.
type Plan struct {
	ID      string       `json:"id,omitempty"`
	Summary string       `json:"summary"`
	Actions []PlanAction `json:"actions"`
}
