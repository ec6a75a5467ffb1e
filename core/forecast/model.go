package forecast

import "time"

// Features is the single-row numeric input handed to a model.
type Features struct {
	Date          time.Time
	AvgTemp       float64
	HouseholdSize float64
	Weekend       float64
}

// Prediction is a point estimate with its raw interval bounds as the
// model produced them. The engine, not the model, enforces bound
// ordering.
type Prediction struct {
	Point float64
	Lower float64
	Upper float64
}

// Model is the opaque regression capability behind the engine. Predict
// must be deterministic and must not mutate model state; implementations
// are shared across concurrent requests.
type Model interface {
	Predict(f Features) (Prediction, error)
}

// Resolver maps an appliance name to its loaded model.
type Resolver interface {
	Resolve(appliance string) (Model, error)
}
