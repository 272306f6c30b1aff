package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wishport/unfurl/cache"
	"github.com/wishport/unfurl/config"
	"github.com/wishport/unfurl/engine"
	"github.com/wishport/unfurl/extract"
	"github.com/wishport/unfurl/models"
)

// Metadata returns a handler for POST /api/v1/metadata.
//
// Orchestration flow:
//  1. Parse & validate the request — bad input never reaches the network.
//  2. Optional cache lookup (only when the client asked via max_age).
//  3. Orchestrator.Fetch: direct tier, then rendering tier.
//  4. Extractor.Extract: never fails; field misses come back as nulls.
func Metadata(orc *engine.Orchestrator, ex *extract.Extractor, cc *cache.Cache, cfg config.FetchConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.MetadataRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON body"})
			return
		}
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}

		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cache.Key(req.URL), req.MaxAge); hit {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		ctx := c.Request.Context()
		if req.Timeout > 0 {
			timeout := time.Duration(req.Timeout) * time.Second
			if timeout > cfg.MaxTimeout {
				timeout = cfg.MaxTimeout
			}
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		result, err := orc.Fetch(ctx, &engine.FetchRequest{URL: req.URL})
		if err != nil {
			if errors.Is(err, engine.ErrAllTiersFailed) {
				err = models.NewExtractError(models.ErrCodeUpstreamFetch,
					"could not retrieve sufficient page content", err)
			}
			respondError(c, err)
			return
		}

		meta := ex.Extract(result)

		if cc != nil && req.MaxAge > 0 {
			cc.Set(cache.Key(req.URL), meta)
		}

		c.JSON(http.StatusOK, meta)
	}
}

// respondError maps an ExtractError code to the right HTTP status and
// writes the {"error": string} wire format.
func respondError(c *gin.Context, err error) {
	var exErr *models.ExtractError
	if !errors.As(err, &exErr) {
		exErr = models.NewExtractError(models.ErrCodeInternal, err.Error(), err)
	}
	if exErr.Code == models.ErrCodeInternal {
		slog.Error("request failed", "error", err)
	}
	c.JSON(statusForCode(exErr.Code), models.ErrorResponse{Error: exErr.Message})
}

// statusForCode translates error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case models.ErrCodeInvalidRequest:
		return http.StatusBadRequest // 400
	case models.ErrCodeUpstreamFetch:
		return http.StatusBadGateway // 502
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
