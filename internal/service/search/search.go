// Package search provides the Pinterest-style mock search service behind the
// refpin MCP tools.
package search

import (
	"strings"

	"github.com/refpin/refpin/internal/mockgen"
	"github.com/refpin/refpin/pkg/types"
	"go.uber.org/zap"
)

// artTerms are the query words that already signal an art-reference intent.
// If none of them appears in the query, the art-focused qualifier is added.
var artTerms = []string{"reference", "art", "drawing", "photo"}

// artQualifier is appended to art-focused queries that lack an art term.
const artQualifier = "reference photo"

// Service answers search requests with mock data.
// It holds no per-call state, so concurrent calls need no coordination.
type Service struct {
	gen *mockgen.Generator
	log *zap.Logger
}

// NewService creates a search service backed by the given generator.
func NewService(gen *mockgen.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, log: logger}
}

// SearchImages returns exactly limit mock results for the query.
// When artFocused is set and the query carries no art-related term, the query
// is biased by appending an art qualifier before generation.
// The limit must already be within its declared bounds.
func (s *Service) SearchImages(query string, limit int, artFocused bool) []types.SearchResult {
	effective := query
	if artFocused && !containsArtTerm(query) {
		effective = query + " " + artQualifier
	}

	s.log.Debug("searching for images",
		zap.String("query", effective),
		zap.Int("limit", limit),
	)
	return s.gen.Results(effective, limit)
}

// DiverseResults searches each query in turn and concatenates the results in
// input order, each group capped at imagesPerQuery. Results are de-duplicated
// by id across groups; ids are query-derived, so distinct queries never
// collide and the total stays sum(min(imagesPerQuery, cap)) per query.
func (s *Service) DiverseResults(queries []string, imagesPerQuery int) []types.SearchResult {
	all := make([]types.SearchResult, 0, len(queries)*imagesPerQuery)
	seen := make(map[string]struct{}, len(queries)*imagesPerQuery)

	for _, q := range queries {
		for _, r := range s.SearchImages(q, imagesPerQuery, true) {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			all = append(all, r)
		}
	}

	s.log.Debug("diverse search finished",
		zap.Int("queries", len(queries)),
		zap.Int("results", len(all)),
	)
	return all
}

func containsArtTerm(query string) bool {
	lower := strings.ToLower(query)
	for _, term := range artTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
