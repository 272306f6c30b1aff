package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Tier pairs an engine with its per-attempt timeout.
type Tier struct {
	Engine  Engine
	Timeout time.Duration
}

// Orchestrator walks the fetch tiers in order: the direct HTTP attempt
// first, then the rendering service when configured. Tiers run strictly
// sequentially; a later tier starts only after the earlier one failed or
// returned insufficient content. There is exactly one attempt per tier and
// no retries: a timeout or network error simply falls through to the next
// tier or to final failure.
type Orchestrator struct {
	tiers []Tier
}

// NewOrchestrator creates an Orchestrator over the given tiers.
func NewOrchestrator(tiers []Tier) *Orchestrator {
	return &Orchestrator{tiers: tiers}
}

// ErrAllTiersFailed is returned when every configured tier was exhausted
// without producing sufficient content.
var ErrAllTiersFailed = errors.New("engine: all fetch tiers failed")

// Fetch runs the tiers for the given request and returns the first
// sufficient result. Network and status errors inside a tier are logged
// and swallowed; only total exhaustion surfaces as an error.
func (o *Orchestrator) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	for _, tier := range o.tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tierCtx := ctx
		cancel := context.CancelFunc(func() {})
		if tier.Timeout > 0 {
			tierCtx, cancel = context.WithTimeout(ctx, tier.Timeout)
		}

		start := time.Now()
		result, err := tier.Engine.Fetch(tierCtx, req)
		cancel()

		if err != nil {
			level := slog.LevelDebug
			if errors.Is(err, ErrInsufficientContent) {
				level = slog.LevelInfo
			}
			slog.Log(ctx, level, "fetch tier failed",
				"tier", tier.Engine.Name(),
				"url", req.URL,
				"elapsed_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			continue
		}

		if slog.Default().Enabled(ctx, slog.LevelDebug) {
			slog.Debug("fetch tier succeeded",
				"tier", tier.Engine.Name(),
				"url", req.URL,
				"final_url", result.FinalURL,
				"bytes", len(result.HTML),
				"title", SniffTitle(result.HTML),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		}
		return result, nil
	}
	return nil, ErrAllTiersFailed
}
