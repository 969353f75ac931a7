package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/generative-ai-go/genai"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidResponse wraps model output that is not JSON or does not match
// the response schema.
var ErrInvalidResponse = errors.New("invalid model response")

// responseSchema is reflected once from a Go result type. The same reflection
// drives both the schema sent to Gemini and the validator applied to its output.
type responseSchema struct {
	name      string
	gemini    *genai.Schema
	validator *jsonschema.Schema
}

func newResponseSchema(name string, v interface{}) (*responseSchema, error) {
	r := invopop.Reflector{Anonymous: true, DoNotReference: true, AllowAdditionalProperties: true}
	reflected := r.ReflectFromType(reflect.TypeOf(v))

	raw, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s schema: %w", name, err)
	}

	url := "mem://ai/" + name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add %s schema resource: %w", name, err)
	}
	validator, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
	}

	return &responseSchema{
		name:      name,
		gemini:    toGeminiSchema(reflected),
		validator: validator,
	}, nil
}

// decode validates raw model output against the schema and unmarshals it into out.
func (s *responseSchema) decode(raw string, out interface{}) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyResponse
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("%w: %s is not JSON: %v", ErrInvalidResponse, s.name, err)
	}
	if err := s.validator.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, s.name, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, s.name, err)
	}
	return nil
}

var geminiTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
}

// toGeminiSchema converts the reflected JSON Schema into the subset the
// Gemini API understands.
func toGeminiSchema(s *invopop.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        geminiTypes[s.Type],
		Description: s.Description,
		Required:    s.Required,
	}
	if len(s.Enum) > 0 {
		out.Format = "enum"
		for _, e := range s.Enum {
			out.Enum = append(out.Enum, fmt.Sprint(e))
		}
	}
	if s.Items != nil {
		out.Items = toGeminiSchema(s.Items)
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = toGeminiSchema(pair.Value)
		}
	}
	return out
}
