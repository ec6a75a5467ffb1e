// Package advisor is the chat-completion boundary: it turns decision
// payloads into savings plans and plans into email bodies. Prompt
// content is carried as instruction strings; everything numeric happens
// upstream in the forecasting core.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/homevolt/homevolt/core/model"
	"github.com/homevolt/homevolt/core/recommend"
	"github.com/homevolt/homevolt/infra/logger"
)

// Config holds the chat-completion connection settings.
type Config struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// SetDefaults applies the default model.
func (c *Config) SetDefaults() {
	if c.Model == "" {
		c.Model = openai.ChatModelGPT4oMini
	}
}

// Enabled reports whether an advisor can be constructed from the config.
func (c Config) Enabled() bool { return c.APIKey != "" }

const planInstructions = `You analyze household energy data: last usage, tomorrow's weather and per-appliance kWh forecasts.
Suggest optimized settings for the appliances. Check that each recommendation is practical in a real household;
if there is no opportunity to save, say so instead of force-fitting actions. Estimate savings where possible.
Return JSON ONLY with this shape:
{"summary": "...", "actions": [{"appliance": "...", "recommendation": "...", "estimated_kwh_saving": 0.0, "estimated_cost_saving": 0.0, "currency": "..."}]}`

const emailInstructions = `You format a household energy savings plan as a concise, friendly plain-text email.
Greet the recipient by name, summarize the overall context, then list each recommendation with its appliance,
action and estimated savings (kWh and cost with currency). No HTML, no JSON, no code fences, no sign-off:
the system appends the closing automatically.`

const emailSignature = "\n\nBest regards,\nHomeVolt"

// OpenAIAdvisor generates plans and email bodies with chat completions.
type OpenAIAdvisor struct {
	client openai.Client
	model  string
	log    logger.Logger
}

// New creates an OpenAIAdvisor from the config.
func New(cfg Config) *OpenAIAdvisor {
	cfg.SetDefaults()
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIAdvisor{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		log:    logger.New("advisor"),
	}
}

// Advise sends the payload to the model and extracts the plan JSON.
func (a *OpenAIAdvisor) Advise(ctx context.Context, payload recommend.DecisionPayload) (model.Plan, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return model.Plan{}, fmt.Errorf("encode payload: %w", err)
	}
	text, err := a.complete(ctx, planInstructions, "Analyze and recommend: "+string(raw))
	if err != nil {
		return model.Plan{}, err
	}
	var plan model.Plan
	if err := ExtractJSON(text, &plan); err != nil {
		return model.Plan{}, err
	}
	return plan, nil
}

// FormatEmail turns a plan into a plain-text email body addressed to
// recipientName, with the service signature appended.
func (a *OpenAIAdvisor) FormatEmail(ctx context.Context, plan model.Plan, recipientName string) (string, error) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("encode plan: %w", err)
	}
	prompt := fmt.Sprintf("Format this energy-saving plan into an email.\n\nRecipient: %s\n\nPlan JSON:\n%s\n\nReturn plain text email only.",
		recipientName, raw)
	body, err := a.complete(ctx, emailInstructions, prompt)
	if err != nil {
		return "", err
	}
	return body + emailSignature, nil
}

func (a *OpenAIAdvisor) complete(ctx context.Context, system, user string) (string, error) {
	res, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model: a.model,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrMalformedResponse)
	}
	return res.Choices[0].Message.Content, nil
}
