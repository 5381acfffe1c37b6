package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// itemSchemaDef constrains one item on the wire. Structural checks
// only; the QuestionItem invariants (bounds, pattern compilation) run
// afterwards in decodeWireItems.
var itemSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"id", "type", "prompt", "skillTag"},
	"properties": map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"type":     map[string]any{"enum": []any{"multiple_choice", "short_answer"}},
		"prompt":   map[string]any{"type": "string", "minLength": 1},
		"stimulus": map[string]any{"type": "string"},
		"options": map[string]any{
			"type":     "array",
			"minItems": 2,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"answerIndex":   map[string]any{"type": "integer", "minimum": 0},
		"answerPattern": map[string]any{"type": "string"},
		"skillTag":      map[string]any{"type": "string", "minLength": 1},
	},
}

// planSchemaDef constrains the full session-plan payload from the
// remote service.
var planSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"sessionId", "items"},
	"properties": map[string]any{
		"sessionId": map[string]any{"type": "string", "minLength": 1},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    itemSchemaDef,
		},
	},
}

// itemSetSchemaDef constrains an item set without a session id, the
// shape an LLM source generates.
var itemSetSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"items"},
	"properties": map[string]any{
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    itemSchemaDef,
		},
	},
}

// ItemSetSchema returns the JSON schema for a generated item set, for
// sources that constrain structured output (the LLM source sends this
// to its provider).
func ItemSetSchema() map[string]any {
	return itemSetSchemaDef
}

var schemaCache sync.Map // name → *jsonschema.Schema

// compiledSchema compiles and caches a schema definition by name.
func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value, not Go maps with typed
	// ints, so round-trip through encoding/json first.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}
	var parsed any
	if err := json.Unmarshal(defBytes, &parsed); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	schemaCache.Store(name, compiled)
	return compiled, nil
}

// validateAgainst checks raw JSON against a named schema definition.
func validateAgainst(name string, def map[string]any, raw json.RawMessage) error {
	compiled, err := compiledSchema(name, def)
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("payload failed %s schema validation: %w", name, err)
	}
	return nil
}

// wireItem is the JSON shape of one item on the wire. Both the remote
// service and the LLM source produce this shape.
type wireItem struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Prompt        string   `json:"prompt"`
	Stimulus      string   `json:"stimulus"`
	Options       []string `json:"options"`
	AnswerIndex   int      `json:"answerIndex"`
	AnswerPattern string   `json:"answerPattern"`
	SkillTag      string   `json:"skillTag"`
}

// decodeWireItems converts wire items into validated QuestionItems.
func decodeWireItems(wire []wireItem) ([]QuestionItem, error) {
	items := make([]QuestionItem, 0, len(wire))
	for _, w := range wire {
		var (
			item QuestionItem
			err  error
		)
		switch ItemType(w.Type) {
		case TypeMultipleChoice:
			item, err = NewMultipleChoice(w.ID, w.Prompt, w.Stimulus, w.Options, w.AnswerIndex, w.SkillTag)
		case TypeShortAnswer:
			item, err = NewShortAnswer(w.ID, w.Prompt, w.Stimulus, w.AnswerPattern, w.SkillTag)
		default:
			err = fmt.Errorf("item %s: unknown type %q", w.ID, w.Type)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ParsePlanPayload validates a remote session-plan payload against the
// plan schema and the QuestionItem invariants, returning a usable plan.
func ParsePlanPayload(raw json.RawMessage) (SessionPlan, error) {
	if err := validateAgainst("session-plan", planSchemaDef, raw); err != nil {
		return SessionPlan{}, err
	}
	var pr struct {
		SessionID string     `json:"sessionId"`
		Items     []wireItem `json:"items"`
	}
	if err := json.Unmarshal(raw, &pr); err != nil {
		return SessionPlan{}, fmt.Errorf("decode plan: %w", err)
	}
	items, err := decodeWireItems(pr.Items)
	if err != nil {
		return SessionPlan{}, err
	}
	plan := SessionPlan{SessionID: pr.SessionID, Items: items}
	if err := validatePlan(plan); err != nil {
		return SessionPlan{}, err
	}
	return plan, nil
}

// ParseItemSetPayload validates a generated item-set payload (no
// session id) and returns the decoded items.
func ParseItemSetPayload(raw json.RawMessage) ([]QuestionItem, error) {
	if err := validateAgainst("item-set", itemSetSchemaDef, raw); err != nil {
		return nil, err
	}
	var pr struct {
		Items []wireItem `json:"items"`
	}
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("decode item set: %w", err)
	}
	items, err := decodeWireItems(pr.Items)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate item id %s", item.ID)
		}
		seen[item.ID] = true
	}
	return items, nil
}
