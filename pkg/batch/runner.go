// ------------------------------------------------------
// editdist - Batch Runner
// Bounded-concurrency comparison of many string pairs
// ------------------------------------------------------

package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/strmetrics/editdist/pkg/config"
	"github.com/strmetrics/editdist/pkg/levenshtein"
	"github.com/strmetrics/editdist/pkg/result"
)

// Pair is one comparison request.
type Pair struct {
	S1 string
	S2 string
}

// Runner compares many Pairs concurrently, bounded by cfg.Concurrency, and
// feeds every outcome into a result.Processor.
type Runner struct {
	cfg       *config.Config
	processor *result.Processor

	totalPairs    int
	comparedPairs atomic.Int32
	stopped       atomic.Bool
}

// NewRunner creates a Runner around an already-constructed Processor, so
// callers can pick the output format (and open any output file) once and
// reuse it across runs.
func NewRunner(cfg *config.Config, processor *result.Processor) *Runner {
	return &Runner{cfg: cfg, processor: processor}
}

// Run compares every pair and returns once all of them have either
// finished or been abandoned due to ctx cancellation. It never returns an
// error itself: per-pair failures are recorded on the individual results.
func (r *Runner) Run(ctx context.Context, pairs []Pair) {
	r.totalPairs = len(pairs)

	sem := make(chan struct{}, r.cfg.Concurrency)
	var wg sync.WaitGroup

	var tick <-chan time.Time
	if r.cfg.RateLimit > 0 && time.Duration(r.cfg.RateLimit) <= time.Second {
		ticker := time.NewTicker(time.Second / time.Duration(r.cfg.RateLimit))
		defer ticker.Stop()
		tick = ticker.C
	}

	for _, pair := range pairs {
		wg.Add(1)

		go func(p Pair) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				r.stopped.Store(true)
				return
			}
			defer func() { <-sem }()

			if tick != nil {
				select {
				case <-tick:
				case <-ctx.Done():
					r.stopped.Store(true)
					return
				}
			}

			r.compare(p)
		}(pair)
	}

	go func() {
		<-ctx.Done()
		r.stopped.Store(true)
	}()

	wg.Wait()
}

// compare runs one pair through the core algorithm and records the
// result, skipping output entirely if the run was already cancelled.
func (r *Runner) compare(p Pair) {
	if r.stopped.Load() {
		return
	}

	start := time.Now()

	pr := &result.PairResult{S1: p.S1, S2: p.S2}

	defer func() {
		if r.stopped.Load() {
			return
		}
		pr.Duration = time.Since(start)
		r.processor.AddResult(pr)
		r.comparedPairs.Add(1)
	}()

	s1, s2 := levenshtein.RuneUnits([]rune(p.S1)), levenshtein.RuneUnits([]rune(p.S2))

	pr.Distance = levenshtein.Distance(s1, s2, r.cfg.ScoreCutoff)
	pr.Similarity = levenshtein.Similarity(s1, s2, levenshtein.NoCutoff)
}

// Progress reports how many of the total pairs have been compared so far.
func (r *Runner) Progress() (compared, total int) {
	return int(r.comparedPairs.Load()), r.totalPairs
}
