// Package prompt asks for values on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"

	"tableflip.dev/zenday/pkg/profile"
)

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// String asks for one value. An empty answer keeps def.
func String(label, def string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Templates: templates,
		Validate:  validate,
	}
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", label, err)
	}
	if result == "" {
		result = def
	}
	return strings.TrimSpace(result), nil
}

// Profile asks for every profile field, starting from p.
func Profile(p profile.Profile) (profile.Profile, error) {
	var err error
	if p.Name, err = String("Name", p.Name, Required); err != nil {
		return p, err
	}
	if p.BirthDate, err = String("Birth date (YYYY-MM-DD)", p.BirthDate, Layout("2006-01-02")); err != nil {
		return p, err
	}
	if p.BirthTime, err = String("Birth time (HH:MM)", p.BirthTime, Layout("15:04")); err != nil {
		return p, err
	}
	return p, nil
}

// Required rejects blank input.
func Required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

// Layout returns a validator that accepts input parsing as a time in layout.
func Layout(layout string) func(string) error {
	return func(input string) error {
		if _, err := time.Parse(layout, strings.TrimSpace(input)); err != nil {
			return fmt.Errorf("want %s", layout)
		}
		return nil
	}
}
