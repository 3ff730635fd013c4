package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/Coderanger08/FinGenie/utils"
)

// ============================================================================
// FLOW INVOKER
// Runs one AI flow end to end: validate input, render the prompt, call the
// model, validate the model's JSON, and return either the validated output or
// the flow's deterministic fallback. Model-side failures never escape as
// errors; only invalid caller input does.
// ============================================================================

// SchemaValidationError reports the first field that violated a flow schema.
// It is fatal for input validation and recovered into a fallback for output
// validation.
type SchemaValidationError struct {
	Flow       string
	Field      string
	Constraint string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("flow %s: field %q violates constraint %q", e.Flow, e.Field, e.Constraint)
}

var flowValidate = validator.New(validator.WithRequiredStructEnabled())

// validateSchema runs struct validation and converts the first violation into
// a *SchemaValidationError naming the offending field and constraint.
func validateSchema(flow string, v interface{}) error {
	err := flowValidate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint = constraint + "=" + fe.Param()
		}
		return &SchemaValidationError{Flow: flow, Field: fe.Field(), Constraint: constraint}
	}

	return &SchemaValidationError{Flow: flow, Field: "(unknown)", Constraint: err.Error()}
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// FlowResult is what every invocation returns: a schema-conformant output,
// tagged with whether it is the real answer or the flow's fallback.
type FlowResult[T any] struct {
	Output   T
	Fallback bool
}

// flowSpec binds one flow's prompt rendering and fallback policy to its
// typed input and output.
type flowSpec[In any, Out any] struct {
	name         string
	systemPrompt string
	render       func(In) string
	fallback     func(In) Out
}

// FlowInvoker executes flows against a ModelClient. Stateless between
// invocations; safe for concurrent use.
type FlowInvoker struct {
	model   ModelClient
	timeout time.Duration
}

func NewFlowInvoker(model ModelClient) *FlowInvoker {
	return &FlowInvoker{
		model:   model,
		timeout: 90 * time.Second,
	}
}

// invokeFlow is the single code path for all flows.
func invokeFlow[In any, Out any](ctx context.Context, inv *FlowInvoker, spec flowSpec[In, Out], input In) (FlowResult[Out], error) {
	var zero FlowResult[Out]

	// Caller input that violates the schema is a programming bug upstream;
	// no model call, no fallback.
	if err := validateSchema(spec.name, input); err != nil {
		return zero, err
	}

	prompt := spec.render(input)

	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	raw, err := inv.model.Invoke(ctx, spec.systemPrompt, prompt)
	if err != nil {
		utils.SafeWarn("[Flow:%s] model call failed: %v", spec.name, err)
		return FlowResult[Out]{Output: spec.fallback(input), Fallback: true}, nil
	}

	output, err := decodeFlowOutput[Out](spec.name, raw)
	if err != nil {
		utils.SafeWarn("[Flow:%s] invalid model output: %v", spec.name, err)
		return FlowResult[Out]{Output: spec.fallback(input), Fallback: true}, nil
	}

	return FlowResult[Out]{Output: output}, nil
}

// decodeFlowOutput extracts the JSON body from the model's reply, decodes it,
// and validates it against the flow's output schema.
func decodeFlowOutput[Out any](flow, raw string) (Out, error) {
	var out Out

	body := extractJSON(raw)
	if !gjson.Valid(body) {
		return out, fmt.Errorf("response is not valid JSON")
	}

	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if err := validateSchema(flow, out); err != nil {
		return out, err
	}

	return out, nil
}

// extractJSON strips markdown fences and surrounding prose the model may have
// wrapped around its JSON body.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	content = strings.Trim(content, "`")

	// Some models preface the object with a sentence. Keep from the first
	// brace through the last.
	if start := strings.IndexByte(content, '{'); start > 0 {
		if end := strings.LastIndexByte(content, '}'); end > start {
			content = content[start : end+1]
		}
	}

	return content
}
