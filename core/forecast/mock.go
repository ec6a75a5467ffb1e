package forecast

import "fmt"

// MockModel returns a fixed prediction or error. It exercises the
// engine without trained artifacts.
type MockModel struct {
	Result Prediction
	Err    error
}

// Predict returns the configured prediction.
func (m MockModel) Predict(Features) (Prediction, error) {
	if m.Err != nil {
		return Prediction{}, m.Err
	}
	return m.Result, nil
}

// MockResolver resolves appliances from an in-memory map.
type MockResolver struct {
	Models map[string]Model
}

// Resolve returns the configured model or ErrUnknownAppliance.
func (m MockResolver) Resolve(appliance string) (Model, error) {
	if mdl, ok := m.Models[appliance]; ok {
		return mdl, nil
	}
	return nil, fmt.Errorf("%s: %w", appliance, ErrUnknownAppliance)
}
