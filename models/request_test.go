package models

import (
	"errors"
	"testing"
)

func TestMetadataRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://www.example.com/product/1", false},
		{"http", "http://example.com", false},
		{"surrounding whitespace", "  https://example.com/p  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"no scheme", "www.example.com/product", true},
		{"scheme without host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &MetadataRequest{URL: tt.url}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil {
				var exErr *ExtractError
				if !errors.As(err, &exErr) || exErr.Code != ErrCodeInvalidRequest {
					t.Errorf("error = %v, want ExtractError with INVALID_REQUEST", err)
				}
			}
		})
	}
}

func TestMetadataRequestValidateTrims(t *testing.T) {
	req := &MetadataRequest{URL: "  https://example.com/p "}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL != "https://example.com/p" {
		t.Errorf("URL = %q, want trimmed", req.URL)
	}
}

func TestExtractErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewExtractError(ErrCodeUpstreamFetch, "fetch failed", inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error not reachable via errors.Is")
	}
	if err.Error() == "" {
		t.Error("empty error string")
	}
}
