package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/weasel/internal/ctxlog"
	"github.com/specialistvlad/weasel/internal/evolve"
	"github.com/specialistvlad/weasel/internal/metrics"
	"github.com/specialistvlad/weasel/internal/mutate"
	"github.com/specialistvlad/weasel/internal/publish"
	"github.com/specialistvlad/weasel/internal/render"
	"github.com/specialistvlad/weasel/internal/sequence"
	"github.com/specialistvlad/weasel/internal/wordset"
)

// Run evolves a random sequence until it converges or ctx is cancelled. Both
// outcomes return a nil error.
func (a *App) Run(ctx context.Context) (evolve.Result, error) {
	cfg := a.config
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	logger.Info("Starting evolution.",
		"seed", seed,
		"length", cfg.Length,
		"min_block", cfg.MinBlock,
		"strategy", cfg.Strategy,
		"dict", cfg.DictPath,
	)

	words, err := wordset.Load(ctx, cfg.DictPath, cfg.MinBlock)
	if err != nil {
		return evolve.Result{}, fmt.Errorf("failed to load word list: %w", err)
	}

	strategy, err := mutate.ParseStrategy(cfg.Strategy)
	if err != nil {
		return evolve.Result{}, err
	}
	mutator, err := mutate.New(strategy, rng, mutate.Options{
		MinBlock: cfg.MinBlock,
		Rate:     cfg.MutationRate,
		Lengths:  words.LengthHistogram(),
	})
	if err != nil {
		return evolve.Result{}, fmt.Errorf("failed to build mutator: %w", err)
	}

	colorMode, err := render.ParseColorMode(cfg.Color)
	if err != nil {
		return evolve.Result{}, err
	}

	var observers []evolve.Observer
	var health *http.Server
	var ln net.Listener
	if cfg.MetricsPort > 0 {
		reg := prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			return evolve.Result{}, err
		}
		observers = append(observers, rec)

		ln, err = net.Listen("tcp", fmt.Sprintf(":%d", cfg.MetricsPort))
		if err != nil {
			return evolve.Result{}, fmt.Errorf("failed to listen for health check server: %w", err)
		}
		health = &http.Server{Handler: a.healthMux(reg), ReadHeaderTimeout: shutdownTimeout}
	} else {
		logger.Debug("Health check server not started: disabled.")
	}

	if cfg.PublishURL != "" {
		pub, err := publish.Dial(ctx, publish.Options{
			URL:       cfg.PublishURL,
			Namespace: cfg.PublishNamespace,
			Event:     cfg.PublishEvent,
		})
		if err != nil {
			closeListener(ln)
			return evolve.Result{}, fmt.Errorf("failed to start publisher: %w", err)
		}
		defer pub.Close()
		observers = append(observers, pub)
	}

	initial, err := sequence.Generate(rng, cfg.Length, cfg.MinBlock, cfg.SpaceProb)
	if err != nil {
		closeListener(ln)
		return evolve.Result{}, fmt.Errorf("failed to generate initial sequence: %w", err)
	}

	engine, err := evolve.New(evolve.Config{
		Words:       words,
		Mutator:     mutator,
		Renderer:    render.NewTerminal(a.outW, colorMode),
		Out:         a.outW,
		MinBlock:    cfg.MinBlock,
		Delay:       cfg.Delay,
		ClearScreen: !cfg.NoClear && render.IsTerminal(a.outW),
		Observers:   observers,
	})
	if err != nil {
		closeListener(ln)
		return evolve.Result{}, err
	}

	began := time.Now()
	// The server lives exactly as long as the loop.
	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)
	if health != nil {
		g.Go(func() error { return a.serveHealth(gctx, health, ln) })
	}

	var res evolve.Result
	g.Go(func() error {
		defer stop()
		var err error
		res, err = engine.Run(gctx, initial)
		return err
	})

	if err := g.Wait(); err != nil {
		return res, err
	}
	logger.Info("Evolution finished.",
		"state", res.State.String(),
		"generations", res.Generations,
		"words", len(res.Matches),
		"elapsed", time.Since(began),
	)
	return res, nil
}

func closeListener(ln net.Listener) {
	if ln != nil {
		ln.Close()
	}
}
