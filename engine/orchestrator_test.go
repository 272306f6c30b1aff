package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubEngine is a scripted tier for orchestration tests.
type stubEngine struct {
	name   string
	result *FetchResult
	err    error
	calls  int
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestOrchestratorFirstTierShortCircuits(t *testing.T) {
	direct := &stubEngine{name: SourceDirect, result: &FetchResult{HTML: "<html>ok</html>", Source: SourceDirect}}
	render := &stubEngine{name: SourceRendered, result: &FetchResult{HTML: "<html>rendered</html>", Source: SourceRendered}}
	orc := NewOrchestrator([]Tier{{Engine: direct}, {Engine: render}})

	res, err := orc.Fetch(context.Background(), &FetchRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceDirect {
		t.Errorf("source = %q, want %q", res.Source, SourceDirect)
	}
	if render.calls != 0 {
		t.Errorf("render tier ran %d times, want 0", render.calls)
	}
}

func TestOrchestratorEscalatesOnInsufficientContent(t *testing.T) {
	direct := &stubEngine{name: SourceDirect, err: ErrInsufficientContent}
	render := &stubEngine{name: SourceRendered, result: &FetchResult{HTML: "<html>rendered</html>", Source: SourceRendered}}
	orc := NewOrchestrator([]Tier{{Engine: direct}, {Engine: render}})

	res, err := orc.Fetch(context.Background(), &FetchRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceRendered {
		t.Errorf("source = %q, want %q", res.Source, SourceRendered)
	}
	if direct.calls != 1 || render.calls != 1 {
		t.Errorf("calls = (%d, %d), want one each", direct.calls, render.calls)
	}
}

func TestOrchestratorExhaustion(t *testing.T) {
	direct := &stubEngine{name: SourceDirect, err: errors.New("connection refused")}
	render := &stubEngine{name: SourceRendered, err: errors.New("service status 500")}
	orc := NewOrchestrator([]Tier{{Engine: direct}, {Engine: render}})

	_, err := orc.Fetch(context.Background(), &FetchRequest{URL: "https://example.com"})
	if !errors.Is(err, ErrAllTiersFailed) {
		t.Fatalf("err = %v, want ErrAllTiersFailed", err)
	}
	if direct.calls != 1 || render.calls != 1 {
		t.Errorf("calls = (%d, %d), want exactly one attempt per tier", direct.calls, render.calls)
	}
}

func TestOrchestratorSingleTier(t *testing.T) {
	direct := &stubEngine{name: SourceDirect, err: ErrInsufficientContent}
	orc := NewOrchestrator([]Tier{{Engine: direct, Timeout: time.Second}})

	_, err := orc.Fetch(context.Background(), &FetchRequest{URL: "https://example.com"})
	if !errors.Is(err, ErrAllTiersFailed) {
		t.Fatalf("err = %v, want ErrAllTiersFailed", err)
	}
}

func TestOrchestratorRespectsCanceledContext(t *testing.T) {
	direct := &stubEngine{name: SourceDirect, result: &FetchResult{HTML: "x", Source: SourceDirect}}
	orc := NewOrchestrator([]Tier{{Engine: direct}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := orc.Fetch(ctx, &FetchRequest{URL: "https://example.com"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if direct.calls != 0 {
		t.Errorf("engine ran %d times after cancellation, want 0", direct.calls)
	}
}

func TestOrchestratorTierTimeout(t *testing.T) {
	slow := &slowEngine{name: SourceDirect, delay: 200 * time.Millisecond}
	fast := &stubEngine{name: SourceRendered, result: &FetchResult{HTML: "x", Source: SourceRendered}}
	orc := NewOrchestrator([]Tier{
		{Engine: slow, Timeout: 20 * time.Millisecond},
		{Engine: fast},
	})

	res, err := orc.Fetch(context.Background(), &FetchRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceRendered {
		t.Errorf("source = %q, want the next tier after a timeout", res.Source)
	}
}

type slowEngine struct {
	name  string
	delay time.Duration
}

func (s *slowEngine) Name() string { return s.name }

func (s *slowEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	select {
	case <-time.After(s.delay):
		return &FetchResult{HTML: "late", Source: s.name}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
