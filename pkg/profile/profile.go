// Package profile holds the single user profile consulted for analysis.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Profile is the user's birth data. It is overwritten wholesale on save.
type Profile struct {
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	BirthTime string `json:"birthTime" validate:"required,datetime=15:04"`
	IsSetup   bool   `json:"isSetup"`
}

var validate = validator.New()

// Validate checks that every required field is present and well formed.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("profile: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", jsonName(fe.Field())))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must match %s", jsonName(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", jsonName(fe.Field())))
		}
	}
	return fmt.Errorf("profile: %s", strings.Join(msgs, ", "))
}

// Complete validates a draft and returns it marked as set up.
func Complete(draft Profile) (Profile, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.BirthDate = strings.TrimSpace(draft.BirthDate)
	draft.BirthTime = strings.TrimSpace(draft.BirthTime)
	if err := draft.Validate(); err != nil {
		return Profile{}, err
	}
	draft.IsSetup = true
	return draft, nil
}

// DisplayName falls back to 旅人 (traveller) for an unnamed user.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return "旅人"
	}
	return p.Name
}

func jsonName(field string) string {
	switch field {
	case "BirthDate":
		return "birthDate"
	case "BirthTime":
		return "birthTime"
	default:
		return strings.ToLower(field)
	}
}
