package search

import (
	"context"

	"github.com/refpin/refpin/internal/registry"
	"github.com/refpin/refpin/pkg/types"
)

// Tool names exposed by the refpin server.
const (
	ToolSearchPinterest        = "search_pinterest"
	ToolSearchPinterestDiverse = "search_pinterest_diverse"
)

// Parameter bounds and defaults for the search tools.
const (
	LimitMin     = 1
	LimitMax     = 30
	LimitDefault = 10

	QueriesMin = 2
	QueriesMax = 8

	ImagesPerQueryMin     = 1
	ImagesPerQueryMax     = 10
	ImagesPerQueryDefault = 5
)

func intPtr(n int) *int { return &n }

// NewRegistry builds the tool registry serving both search tools.
func NewRegistry(svc *Service) (*registry.Registry, error) {
	searchTool := &registry.Tool{
		Spec: registry.ToolSpec{
			Name: ToolSearchPinterest,
			Description: "Search Pinterest for reference images. " +
				"Works best with specific, concrete search terms, " +
				"e.g. \"dancer leap\" rather than \"dynamic pose\".",
			Params: []registry.ParamSpec{
				{
					Name:        "query",
					Kind:        registry.KindString,
					Description: "Search term (2-4 words, specific)",
					Required:    true,
				},
				{
					Name:        "limit",
					Kind:        registry.KindInteger,
					Description: "Number of results (default 10, max 30)",
					Default:     LimitDefault,
					Min:         intPtr(LimitMin),
					Max:         intPtr(LimitMax),
				},
				{
					Name:        "art_focused",
					Kind:        registry.KindBoolean,
					Description: "Add art/reference filters to the query",
					Default:     true,
				},
			},
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			query := args["query"].(string)
			limit := args["limit"].(int)
			artFocused := args["art_focused"].(bool)

			images := svc.SearchImages(query, limit, artFocused)
			return &types.SearchResponse{
				Query:  query,
				Count:  len(images),
				Images: images,
			}, nil
		},
	}

	diverseTool := &registry.Tool{
		Spec: registry.ToolSpec{
			Name: ToolSearchPinterestDiverse,
			Description: "Search Pinterest with multiple queries and combine the results " +
				"to ensure visual diversity. Ideal for practice sessions where " +
				"you want variety across contexts.",
			Params: []registry.ParamSpec{
				{
					Name:        "queries",
					Kind:        registry.KindStringArray,
					Description: "List of 2-8 specific search terms",
					Required:    true,
					MinItems:    QueriesMin,
					MaxItems:    QueriesMax,
				},
				{
					Name:        "images_per_query",
					Kind:        registry.KindInteger,
					Description: "Images per search term (default 5, max 10)",
					Default:     ImagesPerQueryDefault,
					Min:         intPtr(ImagesPerQueryMin),
					Max:         intPtr(ImagesPerQueryMax),
				},
			},
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			queries := args["queries"].([]string)
			perQuery := args["images_per_query"].(int)

			images := svc.DiverseResults(queries, perQuery)
			return &types.DiverseSearchResponse{
				Queries:    queries,
				TotalCount: len(images),
				Images:     images,
			}, nil
		},
	}

	return registry.New(searchTool, diverseTool)
}
