package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// metadataResponse mirrors the unfurl API response model.
type metadataResponse struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Price       *float64 `json:"price"`
	Source      string   `json:"source"`
	Error       string   `json:"error,omitempty"`
}

func main() {
	apiURL := os.Getenv("UNFURL_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("UNFURL_API_KEY")

	s := server.NewMCPServer(
		"unfurl",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	extractTool := mcp.NewTool("extract_product_metadata",
		mcp.WithDescription("Extract structured product metadata (title, description, image, price) from an e-commerce product page URL. Falls back to a rendering service for JavaScript-heavy pages."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The product page URL to extract metadata from"),
		),
	)
	s.AddTool(extractTool, handleExtract(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleExtract(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		body, err := json.Marshal(map[string]string{"url": url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/metadata", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var meta metadataResponse
		if err := json.Unmarshal(respBody, &meta); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if meta.Error != "" {
			return mcp.NewToolResultError(meta.Error), nil
		}

		result := fmt.Sprintf("Source: %s\n", meta.Source)
		if meta.Title != nil {
			result += fmt.Sprintf("Title: %s\n", *meta.Title)
		}
		if meta.Description != nil {
			result += fmt.Sprintf("Description: %s\n", *meta.Description)
		}
		if meta.ImageURL != nil {
			result += fmt.Sprintf("Image: %s\n", *meta.ImageURL)
		}
		if meta.Price != nil {
			result += fmt.Sprintf("Price: %.2f\n", *meta.Price)
		}

		return mcp.NewToolResultText(result), nil
	}
}
