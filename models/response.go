package models

// Metadata is the best-effort extraction result for one product page.
// Every field is independently optional: a miss in one extractor never
// affects the others, and a page where everything missed is still a
// successful extraction.
type Metadata struct {
	// Title is the product title, or null when no probe matched.
	Title *string `json:"title"`

	// Description is the product description, or null.
	Description *string `json:"description"`

	// ImageURL is an absolute URL to the product image, or null.
	ImageURL *string `json:"imageUrl"`

	// Price is the product price rounded to two decimal places,
	// strictly positive, or null.
	Price *float64 `json:"price"`

	// Source records which fetch tier supplied the HTML:
	// "direct" for the plain HTTP fetch, "scraper" for the rendering service.
	Source string `json:"source"`
}

// ErrorResponse is the wire format for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
