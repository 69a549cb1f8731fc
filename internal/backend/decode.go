package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/passgen/passgen-frontend/internal/model"
)

// Schema names a known wire format of password records.
type Schema string

const (
	// SchemaCapitalized is the backend struct encoded with default Go field names.
	SchemaCapitalized Schema = "capitalized"
	// SchemaLowercase is the gRPC message mapped to JSON.
	SchemaLowercase Schema = "lowercase"
	// SchemaNormalized is the shape this frontend serves from /json.
	SchemaNormalized Schema = "normalized"
)

type schemaFields struct {
	schema    Schema
	generated string
	original  string
}

// Order matters: "original" is shared by normalized and lowercase records.
var knownSchemas = []schemaFields{
	{schema: SchemaNormalized, generated: "generated", original: "original"},
	{schema: SchemaLowercase, generated: "xkcd", original: "original"},
	{schema: SchemaCapitalized, generated: "Xkcd", original: "Original"},
}

// DecodePasswords decodes a passwords response into records. The body may be
// a bare array or an object with a "passwords" array. The schema is detected
// from the first record and every record must follow it.
func DecodePasswords(body []byte) ([]model.Password, Schema, error) {
	raw, err := unwrapPasswords(body)
	if err != nil {
		return nil, "", err
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	records := make([]model.Password, 0, len(items))
	if len(items) == 0 {
		return records, "", nil
	}

	fields, ok := detectSchema(items[0])
	if !ok {
		return nil, "", fmt.Errorf("%w: unknown password record fields %v", ErrDecode, keys(items[0]))
	}

	for i, item := range items {
		var p model.Password
		if err := decodeField(item, fields.generated, &p.Generated); err != nil {
			return nil, "", fmt.Errorf("%w: record %d: %v", ErrDecode, i, err)
		}
		if err := decodeField(item, fields.original, &p.Original); err != nil {
			return nil, "", fmt.Errorf("%w: record %d: %v", ErrDecode, i, err)
		}
		records = append(records, p)
	}

	return records, fields.schema, nil
}

func unwrapPasswords(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrDecode)
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	for _, key := range []string{"passwords", "Passwords"} {
		if raw, ok := wrapper[key]; ok {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("%w: object without passwords field", ErrDecode)
}

func detectSchema(item map[string]json.RawMessage) (schemaFields, bool) {
	for _, s := range knownSchemas {
		_, hasGenerated := item[s.generated]
		_, hasOriginal := item[s.original]
		if hasGenerated && hasOriginal {
			return s, true
		}
	}
	return schemaFields{}, false
}

func decodeField(item map[string]json.RawMessage, name string, dst *string) error {
	raw, ok := item[name]
	if !ok {
		return fmt.Errorf("missing field %q", name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %v", name, err)
	}
	return nil
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

type configResponse struct {
	MinPasswordLength *int `json:"MIN_PASSWORD_LENGTH"`
	MaxPasswordLength *int `json:"MAX_PASSWORD_LENGTH"`
}

// DecodeLimits decodes the config endpoint response. Limits outside
// 1 <= min <= max are rejected.
func DecodeLimits(body []byte) (model.Limits, error) {
	var resp configResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.Limits{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if resp.MinPasswordLength == nil || resp.MaxPasswordLength == nil {
		return model.Limits{}, fmt.Errorf("%w: config is missing password length limits", ErrDecode)
	}

	limits := model.Limits{Min: *resp.MinPasswordLength, Max: *resp.MaxPasswordLength}
	if limits.Min < 1 || limits.Max < limits.Min {
		return model.Limits{}, fmt.Errorf("%w: invalid limits %d..%d", ErrDecode, limits.Min, limits.Max)
	}
	return limits, nil
}
