// Package types contains the wire types shared between the refpin server,
// its HTTP API and the client library.
package types

// SearchResult is a single mock Pinterest image record.
// Results are constructed fresh for every call and have no identity or
// lifecycle beyond the response they appear in.
type SearchResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	SourceURL    string `json:"source_url"`

	Board   string `json:"board"`
	Creator string `json:"creator"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// SearchResponse is the payload returned by the search_pinterest tool.
type SearchResponse struct {
	Query  string         `json:"query"`
	Count  int            `json:"count"`
	Images []SearchResult `json:"images"`
}

// DiverseSearchResponse is the payload returned by the search_pinterest_diverse tool.
type DiverseSearchResponse struct {
	Queries    []string       `json:"queries"`
	TotalCount int            `json:"total_count"`
	Images     []SearchResult `json:"images"`
}
