// SPDX-License-Identifier: MIT
// Package generator: the Generator contract and seeded batch execution.

package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/discretenet/discretenet/problem"
)

var (
	// ErrNilGenerator indicates Batch was called without a generator.
	ErrNilGenerator = errors.New("generator: nil generator")

	// ErrNonPositiveCount indicates a batch of zero or fewer instances was
	// requested.
	ErrNonPositiveCount = errors.New("generator: count must be positive")
)

// Generator produces problem instances of one family. Generate must be a
// pure function of the random source: two calls with identically seeded
// sources yield identical problems. Implementations need not be safe for
// concurrent use; Batch gives every call its own source and never invokes
// one generator value from two goroutines at once unless the generator is
// stateless.
type Generator interface {
	// Family returns the family name, used for logging and file layout.
	Family() string
	// Generate builds one instance, drawing all randomness from rng.
	Generate(rng *rand.Rand) (problem.Problem, error)
}

// BatchOption configures Batch.
type BatchOption func(*batchConfig)

type batchConfig struct {
	workers int
	log     logrus.FieldLogger
}

// WithWorkers bounds the number of concurrent generation goroutines.
// Values below one fall back to the number of CPUs.
func WithWorkers(n int) BatchOption {
	return func(c *batchConfig) { c.workers = n }
}

// WithLogger routes batch progress logging to log instead of the standard
// logger.
func WithLogger(log logrus.FieldLogger) BatchOption {
	return func(c *batchConfig) { c.log = log }
}

// Batch generates count instances of gen, reproducibly from seed.
//
// Child seeds are drawn sequentially from a parent source seeded with
// seed, so instance i always receives the same seed for a given parent
// seed no matter how many workers run. The first error cancels the batch;
// on success the instances are returned in child-seed order.
func Batch(ctx context.Context, gen Generator, count int, seed int64, opts ...BatchOption) ([]*problem.Instance, error) {
	if gen == nil {
		return nil, fmt.Errorf("Batch: %w", ErrNilGenerator)
	}
	if count <= 0 {
		return nil, fmt.Errorf("Batch(%s): count=%d: %w", gen.Family(), count, ErrNonPositiveCount)
	}

	cfg := batchConfig{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}
	if cfg.workers > count {
		cfg.workers = count
	}

	parent := rand.New(rand.NewSource(seed))
	seeds := make([]int64, count)
	for i := range seeds {
		seeds[i] = parent.Int63()
	}

	log := cfg.log.WithFields(logrus.Fields{
		"family":  gen.Family(),
		"count":   count,
		"seed":    seed,
		"workers": cfg.workers,
	})
	log.Info("starting batch generation")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type task struct {
		index int
		seed  int64
	}
	tasks := make(chan task)

	instances := make([]*problem.Instance, count)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < cfg.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				if ctx.Err() != nil {
					return
				}
				p, err := gen.Generate(rand.New(rand.NewSource(t.seed)))
				if err != nil {
					fail(fmt.Errorf("Batch(%s): instance %d (seed %d): %w", gen.Family(), t.index, t.seed, err))
					return
				}
				instances[t.index] = problem.NewInstance(p)
				log.WithFields(logrus.Fields{"index": t.index, "name": p.Name()}).Debug("instance generated")
			}
		}()
	}

feed:
	for i, s := range seeds {
		select {
		case tasks <- task{index: i, seed: s}:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		log.WithError(firstErr).Error("batch generation failed")
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Batch(%s): %w", gen.Family(), err)
	}
	log.Info("batch generation complete")
	return instances, nil
}

// SaveBatch saves every instance into dir with the given save options,
// stopping at the first failure.
func SaveBatch(instances []*problem.Instance, dir string, opts ...problem.SaveOption) error {
	for _, in := range instances {
		if err := in.Save(dir, opts...); err != nil {
			return fmt.Errorf("SaveBatch: %w", err)
		}
	}
	return nil
}
