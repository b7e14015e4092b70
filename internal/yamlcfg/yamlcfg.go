// Package yamlcfg loads weasel settings from YAML files. Unknown keys are an
// error so typos do not silently fall back to defaults.
package yamlcfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/weasel/internal/config"
	"github.com/specialistvlad/weasel/internal/ctxlog"
)

type document struct {
	Length       *int     `yaml:"length"`
	MinBlock     *int     `yaml:"min_block"`
	MutationRate *float64 `yaml:"mutation_rate"`
	SpaceProb    *float64 `yaml:"space_prob"`
	Sleep        *float64 `yaml:"sleep"`
	Dict         *string  `yaml:"dict"`
	Seed         *uint64  `yaml:"seed"`
	Strategy     *string  `yaml:"strategy"`
	Color        *string  `yaml:"color"`

	Log *struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
	Metrics *struct {
		Port *int `yaml:"port"`
	} `yaml:"metrics"`
	Publish *struct {
		URL       *string `yaml:"url"`
		Event     *string `yaml:"event"`
		Namespace *string `yaml:"namespace"`
	} `yaml:"publish"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a single YAML document from path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Settings, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads settings from r. An empty document yields empty settings.
func Decode(r io.Reader) (*config.Settings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	s := &config.Settings{
		Length:       doc.Length,
		MinBlock:     doc.MinBlock,
		MutationRate: doc.MutationRate,
		SpaceProb:    doc.SpaceProb,
		Sleep:        doc.Sleep,
		Dict:         doc.Dict,
		Seed:         doc.Seed,
		Strategy:     doc.Strategy,
		Color:        doc.Color,
	}
	if doc.Log != nil {
		s.LogLevel = doc.Log.Level
		s.LogFormat = doc.Log.Format
	}
	if doc.Metrics != nil {
		s.MetricsPort = doc.Metrics.Port
	}
	if doc.Publish != nil {
		if doc.Publish.URL == nil {
			return nil, errors.New("publish section requires a url")
		}
		s.PublishURL = doc.Publish.URL
		s.PublishEvent = doc.Publish.Event
		s.PublishNamespace = doc.Publish.Namespace
	}
	return s, nil
}
