package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Length       int           `validate:"gte=1,gtefield=MinBlock"`
	MinBlock     int           `validate:"gte=1"`
	MutationRate float64       `validate:"gte=0,lte=1"`
	SpaceProb    float64       `validate:"gte=0,lte=1"`
	Delay        time.Duration `validate:"gte=0"`
	DictPath     string        `validate:"required"`
	// Seed is nil when the run should pick a random seed.
	Seed     *uint64
	Strategy string `validate:"oneof=repair length"`
	Color    string `validate:"oneof=auto always never"`
	NoClear  bool

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	// MetricsPort enables the health and metrics server when positive.
	MetricsPort int `validate:"gte=0,lte=65535"`

	PublishURL       string `validate:"omitempty,url"`
	PublishEvent     string `validate:"required_with=PublishURL"`
	PublishNamespace string `validate:"omitempty,startswith=/"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Length:           120,
		MinBlock:         3,
		MutationRate:     0.20,
		SpaceProb:        0.04,
		Delay:            50 * time.Millisecond,
		DictPath:         "/usr/share/dict/words",
		Strategy:         "repair",
		Color:            "auto",
		LogFormat:        "text",
		LogLevel:         "warn",
		PublishEvent:     "frame",
		PublishNamespace: "/",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return &cfg, nil
}

// describe turns validator errors into one line per field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "gtefield":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "required", "required_with":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		default:
			if fe.Param() != "" {
				msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
