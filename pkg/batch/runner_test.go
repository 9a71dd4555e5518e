package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/strmetrics/editdist/pkg/batch"
	"github.com/strmetrics/editdist/pkg/config"
	"github.com/strmetrics/editdist/pkg/result"
)

func TestRunnerComparesAllPairs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Concurrency = 4

	proc, err := result.NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer proc.Close()

	runner := batch.NewRunner(cfg, proc)

	pairs := []batch.Pair{
		{S1: "kitten", S2: "sitting"},
		{S1: "flaw", S2: "lawn"},
		{S1: "same", S2: "same"},
	}

	runner.Run(context.Background(), pairs)

	compared, total := runner.Progress()
	if compared != len(pairs) || total != len(pairs) {
		t.Errorf("Progress() = (%d, %d), want (%d, %d)", compared, total, len(pairs), len(pairs))
	}
}

func TestRunnerRespectsCancellation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Concurrency = 1

	proc, err := result.NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer proc.Close()

	runner := batch.NewRunner(cfg, proc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pairs := make([]batch.Pair, 50)
	for i := range pairs {
		pairs[i] = batch.Pair{S1: "kitten", S2: "sitting"}
	}

	done := make(chan struct{})
	go func() {
		runner.Run(ctx, pairs)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return promptly after context cancellation")
	}
}
