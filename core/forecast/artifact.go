package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// ModelTypeAdditive is the only artifact model type currently produced
// by the training pipeline.
const ModelTypeAdditive = "additive"

// Coefficients are the per-feature weights of an additive model.
type Coefficients struct {
	AvgTemp       float64 `json:"avg_temp"`
	HouseholdSize float64 `json:"household_size"`
	Weekend       float64 `json:"is_weekend"`
}

// Artifact is the serialized form of a trained additive regression
// model: an intercept, feature coefficients, an additive day-of-week
// term and a Gaussian residual spread for the prediction interval.
type Artifact struct {
	ModelType    string       `json:"model_type"`
	Appliance    string       `json:"appliance"`
	TrainedAt    time.Time    `json:"trained_at"`
	Intercept    float64      `json:"intercept"`
	Coefficients Coefficients `json:"coefficients"`
	// Weekly is indexed by time.Weekday (Sunday = 0).
	Weekly      [7]float64 `json:"weekly"`
	ResidualStd float64    `json:"residual_std"`
	Confidence  float64    `json:"confidence"`
}

func (a *Artifact) validate() error {
	if a.ModelType != "" && a.ModelType != ModelTypeAdditive {
		return fmt.Errorf("unsupported model type %q", a.ModelType)
	}
	if a.ResidualStd < 0 {
		return fmt.Errorf("residual_std must be non-negative, got %v", a.ResidualStd)
	}
	if a.Confidence <= 0 || a.Confidence >= 1 {
		return fmt.Errorf("confidence must be in (0,1), got %v", a.Confidence)
	}
	return nil
}

// LoadArtifact reads and decodes a model artifact from disk. A missing
// file maps to ErrArtifactMissing, anything undecodable or invalid to
// ErrArtifactCorrupt.
func LoadArtifact(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrArtifactMissing
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	return newAdditiveModel(a), nil
}

// additiveModel evaluates an Artifact. The interval half-width is
// z(confidence) * residual_std with z the standard normal quantile,
// precomputed once so inference is a handful of multiplications.
type additiveModel struct {
	a    Artifact
	half float64
}

func newAdditiveModel(a Artifact) *additiveModel {
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.5 + a.Confidence/2)
	return &additiveModel{a: a, half: z * a.ResidualStd}
}

func (m *additiveModel) Predict(f Features) (Prediction, error) {
	point := m.a.Intercept +
		m.a.Coefficients.AvgTemp*f.AvgTemp +
		m.a.Coefficients.HouseholdSize*f.HouseholdSize +
		m.a.Coefficients.Weekend*f.Weekend +
		m.a.Weekly[int(f.Date.Weekday())]
	return Prediction{Point: point, Lower: point - m.half, Upper: point + m.half}, nil
}
