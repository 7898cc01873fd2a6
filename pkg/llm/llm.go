// Package llm abstracts the hosted generative service: submit a prompt plus a
// required output shape, receive JSON or an error.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned when the service replies without content.
	ErrEmptyResponse = errors.New("llm: empty response")
	// ErrUnavailable is returned by generators that cannot reach a service.
	ErrUnavailable = errors.New("llm: generator unavailable")
)

// Generator produces a JSON document shaped by req.Schema.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}

// Request is one structured-generation call.
type Request struct {
	Prompt      string
	Schema      Schema
	Temperature float32
}

// FieldType is the JSON type of a schema field.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInteger
	TypeStringList
)

// Field describes one property of the expected reply object.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// Schema is the object shape a reply must conform to.
type Schema struct {
	Fields []Field
}

// Required returns the names of the mandatory fields.
func (s Schema) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Decode unmarshals raw into `into` only if it is a JSON object carrying
// every required field of schema with a non-null value. Partial replies are
// rejected whole.
func Decode(raw []byte, into any, schema Schema) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyResponse
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("llm: malformed reply: %w", err)
	}
	for _, name := range schema.Required() {
		v, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("llm: reply missing required field %q", name)
		}
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("llm: reply does not match schema: %w", err)
	}
	return nil
}

// Unavailable fails every call; it stands in when no API key is configured.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, Request) ([]byte, error) {
	return nil, ErrUnavailable
}
