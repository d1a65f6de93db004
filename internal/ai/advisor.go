package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bodyshop-manager/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"github.com/rs/zerolog"
)

// PartSuggestion is one likely-needed part for a described damage.
type PartSuggestion struct {
	PartName    string `json:"part_name"`
	Probability string `json:"probability" jsonschema:"enum=Alta,enum=Média,enum=Baixa"`
}

// WorkloadEstimate is an advisory repair estimate. Values only ever pre-fill
// forms; nothing downstream applies them automatically.
type WorkloadEstimate struct {
	EstimatedDays      int    `json:"estimated_days"`
	EstimatedLaborCost string `json:"estimated_labor_cost" jsonschema:"description=Estimated total labor cost as a plain decimal string"`
	Reasoning          string `json:"reasoning"`
}

// AdvisorService produces AI-assisted suggestions for service orders.
// Every method degrades to a neutral result when the client is not
// configured or the provider fails — callers never see these as errors.
type AdvisorService interface {
	SuggestParts(ctx context.Context, damageDescription, vehicleModel string) ([]PartSuggestion, error)
	EstimateWorkload(ctx context.Context, damageDescription, vehicleModel string) (*WorkloadEstimate, error)
	AnalyzeOrderRisk(ctx context.Context, order *core.ServiceOrder) (string, error)
}

type Advisor struct {
	client *openai.Client // nil when no API key was provided
	logger zerolog.Logger
}

// NewAdvisor builds an Advisor. An empty apiKey yields an advisor that
// returns neutral results for every call.
func NewAdvisor(apiKey string, logger zerolog.Logger) *Advisor {
	a := &Advisor{logger: logger}
	if apiKey != "" {
		client := openai.NewClient(option.WithAPIKey(apiKey))
		a.client = &client
	}
	return a
}

func (a *Advisor) SuggestParts(ctx context.Context, damageDescription, vehicleModel string) ([]PartSuggestion, error) {
	if a.client == nil {
		return []PartSuggestion{}, nil
	}

	prompt := fmt.Sprintf(`You are an experienced auto-body shop estimator.
Given the damage description, list the parts most likely needed for the repair.
Rules:
1. Use the common Brazilian Portuguese part name.
2. Rate each part's probability as Alta, Média or Baixa.
3. List at most 10 parts, most likely first.

Vehicle: %s
Damage: %s`, vehicleModel, damageDescription)

	var out struct {
		Suggestions []PartSuggestion `json:"suggestions"`
	}
	if err := a.structuredCall(ctx, "part_suggestions", "Likely replacement parts for a body repair", prompt, &out); err != nil {
		a.logger.Warn().Err(err).Msg("part suggestion failed, returning no suggestions")
		return []PartSuggestion{}, nil
	}
	return out.Suggestions, nil
}

func (a *Advisor) EstimateWorkload(ctx context.Context, damageDescription, vehicleModel string) (*WorkloadEstimate, error) {
	if a.client == nil {
		return &WorkloadEstimate{Reasoning: "AI not configured"}, nil
	}

	prompt := fmt.Sprintf(`You are an experienced auto-body shop manager in Brazil.
Estimate the repair workload for the damage below.
Rules:
1. estimated_days is whole working days, shop-floor time only.
2. estimated_labor_cost is a plain decimal string in BRL (e.g. "1500.00"), labor only, no parts.
3. Explain your reasoning briefly.

Vehicle: %s
Damage: %s`, vehicleModel, damageDescription)

	var est WorkloadEstimate
	if err := a.structuredCall(ctx, "workload_estimate", "Advisory repair workload estimate", prompt, &est); err != nil {
		a.logger.Warn().Err(err).Msg("workload estimate failed, returning neutral estimate")
		return &WorkloadEstimate{Reasoning: "AI estimate unavailable"}, nil
	}
	return &est, nil
}

func (a *Advisor) AnalyzeOrderRisk(ctx context.Context, order *core.ServiceOrder) (string, error) {
	if a.client == nil {
		return "", nil
	}

	prompt := fmt.Sprintf(`You are an experienced auto-body shop manager.
Assess the delivery and financial risk of this service order in 2-4 sentences.
Mention pending parts, schedule pressure and anything unusual in the numbers.

Order: %s
Status: %s
Entry date: %s
Delivery forecast: %s
Pending parts: %d of %d
Services total: %s
Parts total: %s
Final price: %s
Description: %s`,
		order.ID, order.Status, order.EntryDate, order.DeliveryForecast,
		countPendingParts(order), len(order.Parts),
		order.ServicesTotal, order.PartsTotal, order.FinalPrice,
		order.Description)

	var out struct {
		RiskSummary string `json:"risk_summary"`
	}
	if err := a.structuredCall(ctx, "order_risk", "Delivery and financial risk summary for a service order", prompt, &out); err != nil {
		a.logger.Warn().Err(err).Str("order_id", order.ID).Msg("risk analysis failed, returning empty summary")
		return "", nil
	}
	return strings.TrimSpace(out.RiskSummary), nil
}

func countPendingParts(o *core.ServiceOrder) int {
	n := 0
	for _, p := range o.Parts {
		if p.Status == core.PartRequested || p.Status == core.PartShipped {
			n++
		}
	}
	return n
}

// structuredCall runs a single Responses API call with a JSON schema derived
// from out's type and decodes the model output into out.
func (a *Advisor) structuredCall(ctx context.Context, name, description, prompt string, out any) error {
	schemaJSON, err := json.Marshal(generateSchema(out))
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        name,
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt(description),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return fmt.Errorf("empty response content")
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse completion: %w", err)
	}
	return nil
}

func generateSchema(v any) interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v)
}
