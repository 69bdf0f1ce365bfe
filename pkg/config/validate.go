package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate fails when a provider is missing its API key or URL.
func (a *App) Validate() error {
	if a == nil {
		return errors.New("config: nil")
	}
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return fmt.Errorf("config: invalid or missing %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks a single Bridge section.
func (b *Bridge) Validate() error { return validateSection("bridge", b) }

// Validate checks a single Manteca section.
func (m *Manteca) Validate() error { return validateSection("manteca", m) }

// Validate checks a single Persona section.
func (p *Persona) Validate() error { return validateSection("persona", p) }

func validateSection(name string, section any) error {
	if err := validate.Struct(section); err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	return nil
}
