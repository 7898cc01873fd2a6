package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects how a record is written.
type Format string

const (
	FormatPretty Format = ""
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPretty, "pretty":
		return FormatPretty, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return FormatPretty, fmt.Errorf("printers: unknown output format %q, want json or yaml", s)
}

// Encode writes v as JSON or YAML. YAML goes through JSON first so field
// names match the persisted records.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case FormatYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("printers: format %q is not a structured format", f)
}

// Encode writes v to the printer's output in format f.
func (pp *PrettyPrint) Encode(f Format, v any) error {
	return Encode(pp.out(), f, v)
}
