// Package energy exposes the HTTP boundary of the forecasting service.
// The handlers are thin adapters: decode, delegate, encode. Internal
// failures map to generic server errors so file system paths and other
// internals never leak to callers.
package energy

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/homevolt/homevolt/core/logger"
	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/core/recommend"
)

// emailSubject is fixed for every delivered report.
const emailSubject = "Your Home Energy Optimization Report"

// Optimizer runs the full recommendation workflow for one profile.
type Optimizer interface {
	Optimize(ctx context.Context, profile model.HomeProfile) (model.Plan, recommend.DecisionPayload, error)
}

// EmailFormatter renders a plan into a plain-text email body.
type EmailFormatter interface {
	FormatEmail(ctx context.Context, plan model.Plan, recipientName string) (string, error)
}

// Sender delivers one message.
type Sender interface {
	Send(recipient, subject, body string) error
}

// Handler serves the energy optimization endpoints.
type Handler struct {
	optimizer Optimizer
	formatter EmailFormatter
	sender    Sender
	log       logger.Logger
}

// NewHandler builds the API mux. formatter and sender may be nil; the
// email endpoint then falls back to a plain rendering or reports that
// delivery is not configured.
func NewHandler(optimizer Optimizer, formatter EmailFormatter, sender Sender, log logger.Logger) http.Handler {
	h := &Handler{optimizer: optimizer, formatter: formatter, sender: sender, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/optimize-energy", h.optimizeEnergy)
	mux.HandleFunc("/email-plan", h.emailPlan)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (h *Handler) optimizeEnergy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var profile model.HomeProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	plan, payload, err := h.optimizer.Optimize(r.Context(), profile)
	if err != nil {
		h.log.Errorf("optimize: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if r.URL.Query().Get("raw") == "1" {
		writeJSON(w, payload)
		return
	}
	writeJSON(w, plan)
}

type emailPlanRequest struct {
	Plan  model.Plan `json:"plan_json"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
}

func (h *Handler) emailPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req emailPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !strings.Contains(req.Email, "@") {
		http.Error(w, "invalid email address", http.StatusBadRequest)
		return
	}
	if h.sender == nil {
		http.Error(w, "email delivery not configured", http.StatusServiceUnavailable)
		return
	}
	if req.Name == "" {
		req.Name = "User"
	}

	body, err := h.renderBody(r.Context(), req.Plan, req.Name)
	if err != nil {
		h.log.Errorf("format email: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := h.sender.Send(req.Email, emailSubject, body); err != nil {
		h.log.Errorf("send email: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "sent", "email": req.Email})
}

// renderBody prefers the formatter and degrades to a deterministic
// plain rendering when none is configured.
func (h *Handler) renderBody(ctx context.Context, plan model.Plan, name string) (string, error) {
	if h.formatter != nil {
		return h.formatter.FormatEmail(ctx, plan, name)
	}
	var b strings.Builder
	b.WriteString("Hi " + name + ",\n\n")
	if plan.Summary != "" {
		b.WriteString(plan.Summary + "\n\n")
	}
	for _, a := range plan.Actions {
		b.WriteString("- " + a.Appliance + ": " + a.Recommendation)
		if a.EstimatedCostSaving > 0 {
			b.WriteString(" (saves about " + formatAmount(a.EstimatedCostSaving, a.Currency) + ")")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nBest regards,\nHomeVolt")
	return b.String(), nil
}

func formatAmount(v float64, currency string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
