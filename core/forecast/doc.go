// Package forecast serves per-appliance next-day energy forecasts with
// prediction intervals. Trained models are opaque capabilities behind
// the Model interface; the engine resolves them through a Resolver,
// validates features and guarantees the interval invariant on every
// result.
package forecast
