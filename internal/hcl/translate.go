package hcl

import (
	"fmt"

	"github.com/specialistvlad/weasel/internal/config"
)

// translate converts the decoded file into the format-agnostic settings.
func translate(r *fileRoot) (*config.Settings, error) {
	s := &config.Settings{
		Length:       r.Length,
		MinBlock:     r.MinBlock,
		MutationRate: r.MutationRate,
		SpaceProb:    r.SpaceProb,
		Sleep:        r.Sleep,
		Dict:         r.Dict,
		Strategy:     r.Strategy,
		Color:        r.Color,
	}
	if r.Seed != nil {
		if *r.Seed < 0 {
			return nil, fmt.Errorf("seed must not be negative, got %d", *r.Seed)
		}
		seed := uint64(*r.Seed)
		s.Seed = &seed
	}
	if r.Log != nil {
		s.LogLevel = r.Log.Level
		s.LogFormat = r.Log.Format
	}
	if r.Metrics != nil {
		s.MetricsPort = r.Metrics.Port
	}
	if r.Publish != nil {
		s.PublishURL = &r.Publish.URL
		s.PublishEvent = r.Publish.Event
		s.PublishNamespace = r.Publish.Namespace
	}
	return s, nil
}
