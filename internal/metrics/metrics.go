// Package metrics exposes per-generation progress as Prometheus metrics.
package metrics

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/specialistvlad/weasel/internal/evolve"
	"github.com/specialistvlad/weasel/internal/sequence"
)

const namespace = "weasel"

// Recorder is an evolve.Observer that updates Prometheus collectors from each
// frame.
type Recorder struct {
	Generations     prometheus.Counter
	MutatedCells    prometheus.Counter
	MutationAttempt prometheus.Counter
	Fallbacks       prometheus.Counter
	LockedCells     prometheus.Gauge
	MatchedWords    prometheus.Gauge
	SequenceLength  prometheus.Gauge
	Converged       prometheus.Gauge
	WordLength      prometheus.Histogram

	mu   sync.Mutex
	seen map[sequence.Run]struct{}
}

// NewRecorder creates the collectors and registers them with reg. Passing a
// fresh prometheus.NewRegistry keeps tests isolated from the global registry.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		seen: make(map[sequence.Run]struct{}),
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations rendered since start.",
		}),
		MutatedCells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutated_cells_total",
			Help:      "Cells whose value changed during mutation.",
		}),
		MutationAttempt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutation_attempts_total",
			Help:      "Unlocked cells selected for mutation.",
		}),
		Fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutation_fallbacks_total",
			Help:      "Mutations that fell back to a random letter.",
		}),
		LockedCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "locked_cells",
			Help:      "Cells locked in the latest generation.",
		}),
		MatchedWords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "matched_words",
			Help:      "Dictionary words selected in the latest generation.",
		}),
		SequenceLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sequence_length",
			Help:      "Number of cells in the sequence.",
		}),
		Converged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "converged",
			Help:      "1 once every run is a dictionary word.",
		}),
		WordLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "new_word_length",
			Help:      "Length of words locked for the first time.",
			Buckets:   prometheus.LinearBuckets(3, 1, 10),
		}),
	}

	for _, c := range []prometheus.Collector{
		r.Generations, r.MutatedCells, r.MutationAttempt, r.Fallbacks,
		r.LockedCells, r.MatchedWords, r.SequenceLength, r.Converged, r.WordLength,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return r, nil
}

// ObserveFrame implements evolve.Observer.
func (r *Recorder) ObserveFrame(_ context.Context, f evolve.Frame) error {
	r.Generations.Inc()
	r.MutatedCells.Add(float64(f.Mutation.Changed))
	r.MutationAttempt.Add(float64(f.Mutation.Attempted))
	r.Fallbacks.Add(float64(f.Mutation.Fallbacks))

	r.LockedCells.Set(float64(f.Locks.Count()))
	r.MatchedWords.Set(float64(len(f.Matches)))
	r.SequenceLength.Set(float64(len(f.Sequence)))
	if f.Converged {
		r.Converged.Set(1)
	} else {
		r.Converged.Set(0)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range f.Matches {
		if _, ok := r.seen[m.Run()]; ok {
			continue
		}
		r.seen[m.Run()] = struct{}{}
		r.WordLength.Observe(float64(m.Len()))
	}
	return nil
}
