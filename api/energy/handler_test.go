package energy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/core/recommend"
	"github.com/homevolt/homevolt/infra/logger"
)

type stubOptimizer struct {
	plan    model.Plan
	payload recommend.DecisionPayload
	err     error
}

func (s stubOptimizer) Optimize(context.Context, model.HomeProfile) (model.Plan, recommend.DecisionPayload, error) {
	return s.plan, s.payload, s.err
}

type stubSender struct {
	recipient string
	subject   string
	body      string
	err       error
}

func (s *stubSender) Send(recipient, subject, body string) error {
	s.recipient, s.subject, s.body = recipient, subject, body
	return s.err
}

type stubFormatter struct {
	body string
	err  error
}

func (s stubFormatter) FormatEmail(context.Context, model.Plan, string) (string, error) {
	return s.body, s.err
}

const validProfile = `{"hh_size": 4, "appliances_present": ["Fridge", "AC"]}`

func TestOptimizeEnergy(t *testing.T) {
	plan := model.Plan{ID: "p1", Summary: "shift the AC", Actions: []model.PlanAction{{Appliance: "AC"}}}
	h := NewHandler(stubOptimizer{plan: plan}, nil, nil, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/optimize-energy", strings.NewReader(validProfile))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	var got model.Plan
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "p1" || got.Summary != "shift the AC" {
		t.Errorf("unexpected plan: %+v", got)
	}
}

func TestOptimizeEnergyRaw(t *testing.T) {
	payload := recommend.DecisionPayload{Weather: model.WeatherForecast{Date: "2025-06-01"}}
	h := NewHandler(stubOptimizer{payload: payload}, nil, nil, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/optimize-energy?raw=1", strings.NewReader(validProfile))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got recommend.DecisionPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Weather.Date != "2025-06-01" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestOptimizeEnergyErrorsAreGeneric(t *testing.T) {
	failure := errors.New("open /var/lib/homevolt/artifacts/heater.json: permission denied")
	h := NewHandler(stubOptimizer{err: failure}, nil, nil, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/optimize-energy", strings.NewReader(validProfile))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "/var/lib") || strings.Contains(body, "heater.json") {
		t.Fatalf("internal details leaked: %q", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestOptimizeEnergyBadRequests(t *testing.T) {
	h := NewHandler(stubOptimizer{}, nil, nil, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/optimize-energy", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/optimize-energy", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", rec.Code)
	}
}

func TestEmailPlan(t *testing.T) {
	sender := &stubSender{}
	h := NewHandler(stubOptimizer{}, stubFormatter{body: "Hi Asha, shift the AC."}, sender, logger.NopLogger{})

	body := `{"plan_json": {"summary": "s", "actions": []}, "email": "asha@example.com", "name": "Asha"}`
	req := httptest.NewRequest(http.MethodPost, "/email-plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if sender.recipient != "asha@example.com" {
		t.Errorf("recipient = %q", sender.recipient)
	}
	if sender.subject != emailSubject {
		t.Errorf("subject = %q", sender.subject)
	}
	if sender.body != "Hi Asha, shift the AC." {
		t.Errorf("body = %q", sender.body)
	}
}

func TestEmailPlanFallbackRendering(t *testing.T) {
	sender := &stubSender{}
	h := NewHandler(stubOptimizer{}, nil, sender, logger.NopLogger{})

	body := `{"plan_json": {"summary": "Hot day ahead.", "actions": [{"appliance": "AC", "recommendation": "raise setpoint", "estimated_cost_saving": 8.1, "currency": "INR"}]}, "email": "a@b.c"}`
	req := httptest.NewRequest(http.MethodPost, "/email-plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(sender.body, "Hi User,") {
		t.Errorf("missing default greeting: %q", sender.body)
	}
	if !strings.Contains(sender.body, "AC: raise setpoint") {
		t.Errorf("missing action line: %q", sender.body)
	}
	if !strings.Contains(sender.body, "8.1 INR") {
		t.Errorf("missing cost saving: %q", sender.body)
	}
}

func TestEmailPlanValidation(t *testing.T) {
	h := NewHandler(stubOptimizer{}, nil, &stubSender{}, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/email-plan", strings.NewReader(`{"email": "not-an-address"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid email status = %d", rec.Code)
	}
}

func TestEmailPlanWithoutSender(t *testing.T) {
	h := NewHandler(stubOptimizer{}, nil, nil, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/email-plan", strings.NewReader(`{"email": "a@b.c"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when delivery is not configured", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := NewHandler(stubOptimizer{}, nil, nil, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
