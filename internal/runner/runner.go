// Package runner executes numbered tasks on a worker pool and reports
// each completion to a progress reporter.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// TaskFunc performs task number index.
type TaskFunc func(ctx context.Context, index int) error

// Reporter is notified once per finished task.
type Reporter interface {
	Increment(message string) error
}

// Config configures the worker pool
type Config struct {
	Workers int
}

// Result represents the outcome of a single task
type Result struct {
	Index    int
	Duration time.Duration
	Error    error
}

// Runner coordinates task execution using a worker pool
type Runner struct {
	config Config
}

// New creates a new Runner with the given configuration
func New(cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{config: cfg}
}

// Workers returns the pool size after defaults are applied.
func (r *Runner) Workers() int {
	return r.config.Workers
}

// job represents a single task sent to workers
type job struct {
	index int
}

// Run executes tasks 0..n-1 concurrently. A reporter failure stops the
// remaining tasks and is returned as is; task failures are joined.
func (r *Runner) Run(ctx context.Context, n int, fn TaskFunc, rep Reporter) ([]Result, error) {
	if n <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, n)
	results := make(chan Result, n)

	var (
		repOnce sync.Once
		repErr  error
	)
	reportFailed := func(err error) {
		repOnce.Do(func() {
			repErr = err
			cancel()
		})
	}

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, fn, jobs, results, rep, reportFailed)
		}()
	}

	// Send jobs to workers
	for i := 0; i < n; i++ {
		jobs <- job{index: i}
	}
	close(jobs)

	// Wait for all workers to complete, then close results channel
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results
	all := make([]Result, 0, n)
	var taskErrs []error
	for result := range results {
		all = append(all, result)
		if result.Error != nil {
			taskErrs = append(taskErrs, result.Error)
		}
	}

	if repErr != nil {
		return all, repErr
	}
	if len(taskErrs) > 0 {
		return all, fmt.Errorf("%d of %d tasks failed: %w", len(taskErrs), n, errors.Join(taskErrs...))
	}
	if len(all) < n {
		return all, ctx.Err()
	}
	return all, nil
}

// worker processes jobs from the jobs channel
func (r *Runner) worker(ctx context.Context, fn TaskFunc, jobs <-chan job, results chan<- Result, rep Reporter, reportFailed func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}

			start := time.Now()
			err := fn(ctx, j.index)
			result := Result{Index: j.index, Duration: time.Since(start)}
			if err != nil {
				result.Error = fmt.Errorf("task %d: %w", j.index, err)
			}
			results <- result

			msg := fmt.Sprintf("ok   task %d (%s)", j.index, result.Duration.Round(time.Millisecond))
			if result.Error != nil {
				msg = fmt.Sprintf("FAIL task %d: %v", j.index, err)
			}
			if rep == nil {
				continue
			}
			if repErr := rep.Increment(msg); repErr != nil {
				reportFailed(repErr)
				return
			}
		}
	}
}
