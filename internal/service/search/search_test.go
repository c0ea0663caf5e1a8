package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/refpin/refpin/internal/mockgen"
	"github.com/refpin/refpin/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(mockgen.New(), nil)
}

func TestSearchImagesAppendsArtQualifier(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name       string
		query      string
		artFocused bool
		// queries that bias generation differently produce different ids
		wantSameAsPlain bool
	}{
		{name: "plain query gets qualifier", query: "cat pose", artFocused: true, wantSameAsPlain: false},
		{name: "art focus off", query: "cat pose", artFocused: false, wantSameAsPlain: true},
		{name: "query already mentions reference", query: "cat reference", artFocused: true, wantSameAsPlain: true},
		{name: "query already mentions drawing", query: "figure drawing", artFocused: true, wantSameAsPlain: true},
		{name: "art term is case-insensitive", query: "Cat PHOTO", artFocused: true, wantSameAsPlain: true},
	}

	gen := mockgen.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.SearchImages(tt.query, 3, tt.artFocused)
			require.Len(t, got, 3)

			plain := gen.Results(tt.query, 3)
			if tt.wantSameAsPlain {
				assert.Equal(t, plain, got)
			} else {
				assert.NotEqual(t, plain, got)
				qualified := gen.Results(tt.query+" reference photo", 3)
				assert.Equal(t, qualified, got)
			}
		})
	}
}

func TestSearchImagesTitleReflectsQualifiedQuery(t *testing.T) {
	svc := newTestService()

	got := svc.SearchImages("ballet dancer", 1, true)
	require.Len(t, got, 1)
	assert.Equal(t, "ballet dancer reference photo (reference 1)", got[0].Title)
}

func TestDiverseResultsOrderingAndCount(t *testing.T) {
	svc := newTestService()

	queries := []string{"cat pose", "dog jump", "bird flight"}
	got := svc.DiverseResults(queries, 2)
	require.Len(t, got, 6)

	// results for each query stay contiguous and in input order
	for i, q := range queries {
		group := got[i*2 : i*2+2]
		for _, r := range group {
			assert.Contains(t, r.Title, q)
		}
	}
}

func TestDiverseResultsDeduplicatesByID(t *testing.T) {
	svc := newTestService()

	got := svc.DiverseResults([]string{"same query", "same query"}, 4)
	assert.Len(t, got, 4)

	seen := make(map[string]struct{})
	for _, r := range got {
		_, dup := seen[r.ID]
		assert.False(t, dup, "duplicate id %q", r.ID)
		seen[r.ID] = struct{}{}
	}
}

func TestRegistryListsBothTools(t *testing.T) {
	reg, err := NewRegistry(newTestService())
	require.NoError(t, err)

	specs := reg.List()
	require.Len(t, specs, 2)
	assert.Equal(t, ToolSearchPinterest, specs[0].Name)
	assert.Equal(t, ToolSearchPinterestDiverse, specs[1].Name)
}

func TestSearchPinterestToolDefaults(t *testing.T) {
	reg, err := NewRegistry(newTestService())
	require.NoError(t, err)

	out, err := reg.Invoke(context.Background(), ToolSearchPinterest, map[string]any{
		"query": "cat pose",
	})
	require.NoError(t, err)

	resp, ok := out.(*types.SearchResponse)
	require.True(t, ok)
	assert.Equal(t, "cat pose", resp.Query)
	assert.Equal(t, LimitDefault, resp.Count)
	assert.Len(t, resp.Images, LimitDefault)
}

func TestSearchPinterestToolExactCount(t *testing.T) {
	reg, err := NewRegistry(newTestService())
	require.NoError(t, err)

	out, err := reg.Invoke(context.Background(), ToolSearchPinterest, map[string]any{
		"query": "hand anatomy reference",
		"limit": 3,
	})
	require.NoError(t, err)

	resp := out.(*types.SearchResponse)
	require.Len(t, resp.Images, 3)
	for i, img := range resp.Images {
		assert.NotEmpty(t, img.ImageURL)
		// the query already names a reference, so no qualifier is added
		assert.Equal(t, fmt.Sprintf("hand anatomy reference (reference %d)", i+1), img.Title)
	}
}

func TestSearchPinterestToolClampsLimit(t *testing.T) {
	reg, err := NewRegistry(newTestService())
	require.NoError(t, err)

	tests := []struct {
		limit any
		want  int
	}{
		{limit: 0, want: LimitMin},
		{limit: 100, want: LimitMax},
		{limit: float64(3), want: 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%v", tt.limit), func(t *testing.T) {
			out, err := reg.Invoke(context.Background(), ToolSearchPinterest, map[string]any{
				"query": "cat pose",
				"limit": tt.limit,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.(*types.SearchResponse).Count)
		})
	}
}

func TestSearchPinterestDiverseTool(t *testing.T) {
	reg, err := NewRegistry(newTestService())
	require.NoError(t, err)

	out, err := reg.Invoke(context.Background(), ToolSearchPinterestDiverse, map[string]any{
		"queries":          []any{"cat pose", "dog jump"},
		"images_per_query": 3,
	})
	require.NoError(t, err)

	resp, ok := out.(*types.DiverseSearchResponse)
	require.True(t, ok)
	assert.Equal(t, []string{"cat pose", "dog jump"}, resp.Queries)
	assert.Equal(t, 6, resp.TotalCount)
	assert.Len(t, resp.Images, 6)
}

func TestSearchPinterestDiverseToolDefaultsImagesPerQuery(t *testing.T) {
	reg, err := NewRegistry(newTestService())
	require.NoError(t, err)

	out, err := reg.Invoke(context.Background(), ToolSearchPinterestDiverse, map[string]any{
		"queries": []any{"cat pose", "dog jump"},
	})
	require.NoError(t, err)

	resp := out.(*types.DiverseSearchResponse)
	assert.Equal(t, 2*ImagesPerQueryDefault, resp.TotalCount)
}
