package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wishport/unfurl/cache"
	"github.com/wishport/unfurl/config"
	"github.com/wishport/unfurl/engine"
	"github.com/wishport/unfurl/extract"
	"github.com/wishport/unfurl/extract/sites"
	"github.com/wishport/unfurl/models"
)

// countingEngine is a scripted fetch tier that records how often it ran.
type countingEngine struct {
	html  string
	err   error
	calls int
}

func (e *countingEngine) Name() string { return engine.SourceDirect }

func (e *countingEngine) Fetch(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return &engine.FetchResult{
		HTML:     e.html,
		FinalURL: req.URL,
		Source:   engine.SourceDirect,
	}, nil
}

func newTestHandler(eng engine.Engine, cc *cache.Cache) gin.HandlerFunc {
	extractCfg := config.ExtractConfig{
		BestBuyPriceFloor: 10,
		MinImageDimension: 120,
	}
	orc := engine.NewOrchestrator([]engine.Tier{{Engine: eng, Timeout: time.Second}})
	ex := extract.New(extractCfg, sites.All(extractCfg))
	return Metadata(orc, ex, cc, config.FetchConfig{MaxTimeout: 30 * time.Second})
}

func post(h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/metadata", h)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/metadata", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestMetadataSuccess(t *testing.T) {
	page := `<html><head>
		<meta property="og:title" content="Widget">
		<meta name="description" content="A fine widget.">
		<meta property="og:image" content="https://cdn.example.com/w.jpg">
		<script type="application/ld+json">{"@type":"Product","offers":{"price":"19.99"}}</script>
		</head><body></body></html>`
	eng := &countingEngine{html: page}

	w := post(newTestHandler(eng, nil), `{"url":"https://shop.example.com/widget"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var got models.Metadata
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response json: %v", err)
	}
	if got.Title == nil || *got.Title != "Widget" {
		t.Errorf("title = %v", got.Title)
	}
	if got.Description == nil || *got.Description != "A fine widget." {
		t.Errorf("description = %v", got.Description)
	}
	if got.ImageURL == nil || *got.ImageURL != "https://cdn.example.com/w.jpg" {
		t.Errorf("imageUrl = %v", got.ImageURL)
	}
	if got.Price == nil || *got.Price != 19.99 {
		t.Errorf("price = %v", got.Price)
	}
	if got.Source != engine.SourceDirect {
		t.Errorf("source = %q", got.Source)
	}
}

func TestMetadataInvalidURLNeverFetches(t *testing.T) {
	eng := &countingEngine{html: "unused"}
	h := newTestHandler(eng, nil)

	for _, body := range []string{
		`{"url":""}`,
		`{"url":"ftp://example.com/file"}`,
		`{"url":"not a url"}`,
		`{}`,
	} {
		w := post(h, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
			t.Errorf("body %s: error payload = %s", body, w.Body.String())
		}
	}
	if eng.calls != 0 {
		t.Errorf("engine ran %d times for invalid input, want 0", eng.calls)
	}
}

func TestMetadataMalformedJSON(t *testing.T) {
	eng := &countingEngine{}
	w := post(newTestHandler(eng, nil), `{"url": `)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if eng.calls != 0 {
		t.Errorf("engine ran %d times, want 0", eng.calls)
	}
}

func TestMetadataAllTiersFailed(t *testing.T) {
	eng := &countingEngine{err: errors.New("connection refused")}
	w := post(newTestHandler(eng, nil), `{"url":"https://shop.example.com/widget"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body = %s", w.Code, w.Body.String())
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("error payload = %s", w.Body.String())
	}
}

func TestMetadataInsufficientContentIs502(t *testing.T) {
	eng := &countingEngine{err: engine.ErrInsufficientContent}
	w := post(newTestHandler(eng, nil), `{"url":"https://shop.example.com/widget"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestMetadataCacheOptIn(t *testing.T) {
	page := `<html><head><meta property="og:title" content="Cached Widget"></head></html>`
	eng := &countingEngine{html: page}
	cc := cache.New(100)
	h := newTestHandler(eng, cc)

	body := `{"url":"https://shop.example.com/widget","max_age":60000}`
	if w := post(h, body); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}
	if w := post(h, body); w.Code != http.StatusOK {
		t.Fatalf("second request: status = %d", w.Code)
	}
	if eng.calls != 1 {
		t.Errorf("engine ran %d times, want 1 (second request served from cache)", eng.calls)
	}

	// Without max_age the cache is bypassed entirely.
	if w := post(h, `{"url":"https://shop.example.com/widget"}`); w.Code != http.StatusOK {
		t.Fatalf("third request: status = %d", w.Code)
	}
	if eng.calls != 2 {
		t.Errorf("engine ran %d times, want 2 (no opt-in means no cache read)", eng.calls)
	}
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrCodeInvalidRequest, http.StatusBadRequest},
		{models.ErrCodeUpstreamFetch, http.StatusBadGateway},
		{models.ErrCodeUnauthorized, http.StatusUnauthorized},
		{models.ErrCodeRateLimited, http.StatusTooManyRequests},
		{models.ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
