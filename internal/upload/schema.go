package upload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchema is the contract of the remote posting endpoint. Validated
// locally so a malformed payload never leaves the device.
const payloadSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["record_id", "amount_minor", "currency", "direction", "category_id", "account_id", "pay_time"],
	"properties": {
		"record_id":    {"type": "string", "minLength": 1},
		"amount_minor": {"type": "integer", "minimum": 0},
		"currency":     {"type": "string", "pattern": "^[A-Z]{3}$"},
		"direction":    {"type": "string", "enum": ["EXPENSE", "INCOME"]},
		"category_id":  {"type": "string", "minLength": 1},
		"account_id":   {"type": "string", "minLength": 1},
		"tag_id":       {"type": "string", "minLength": 1},
		"pay_time":     {"type": "integer", "minimum": 0},
		"merchant":     {"type": "string"},
		"remark":       {"type": "string"},
		"order_id":     {"type": "string"}
	}
}`

var compiledSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("payload.json", strings.NewReader(payloadSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("payload.json")
}()

// ValidatePayload checks a posting payload against the endpoint contract.
func ValidatePayload(payload map[string]any) error {
	// round-trip through JSON so integers validate as JSON numbers
	bs, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	var v any
	if err := json.Unmarshal(bs, &v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}
