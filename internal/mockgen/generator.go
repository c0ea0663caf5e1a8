// Package mockgen produces synthetic Pinterest-style image records.
//
// refpin is a teaching example for MCP, not a real search service: no network
// calls are made anywhere in this package. Field values are derived from a
// digest of the query and result index, so the output is deterministic for a
// given input while still showing cosmetic variety across results.
package mockgen

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/refpin/refpin/pkg/types"
)

// dimensions is the palette of image sizes results cycle through.
// Widths follow Pinterest's 736px grid column.
var dimensions = [][2]int{
	{736, 981},
	{736, 1104},
	{736, 552},
	{736, 736},
	{736, 920},
	{736, 1308},
}

// boards is the palette of board names results are attributed to.
var boards = []string{
	"Art Reference",
	"Figure Drawing",
	"Pose Studies",
	"Pinterest Search",
}

// creators is the palette of fake creator names.
var creators = []string{
	"Pinterest User",
	"Reference Collector",
	"Studio Archive",
}

// Generator builds mock search results.
// It is stateless and safe for concurrent use.
type Generator struct{}

// New returns a mock result generator.
func New() *Generator {
	return &Generator{}
}

// Results returns exactly count synthetic SearchResult records for the query.
// It never fails for any well-formed input; out-of-range counts must be
// clamped by the caller before reaching this function.
func (g *Generator) Results(query string, count int) []types.SearchResult {
	if count <= 0 {
		return []types.SearchResult{}
	}

	results := make([]types.SearchResult, 0, count)
	for i := 0; i < count; i++ {
		sum := sha256.Sum256([]byte(fmt.Sprintf("%s#%d", query, i)))
		token := hex.EncodeToString(sum[:16])

		// a stable pseudo pin number for the source URL
		pinID := binary.BigEndian.Uint64(sum[16:24]) % 1e12

		dims := dimensions[int(sum[24])%len(dimensions)]

		results = append(results, types.SearchResult{
			ID:           "pin_" + token[:12],
			Title:        fmt.Sprintf("%s (reference %d)", query, i+1),
			Description:  fmt.Sprintf("Pinterest image for %s", query),
			ImageURL:     fmt.Sprintf("https://i.pinimg.com/736x/%s.jpg", token),
			ThumbnailURL: fmt.Sprintf("https://i.pinimg.com/236x/%s.jpg", token),
			SourceURL:    fmt.Sprintf("https://www.pinterest.com/pin/%d/", pinID),
			Board:        boards[int(sum[25])%len(boards)],
			Creator:      creators[int(sum[26])%len(creators)],
			Width:        dims[0],
			Height:       dims[1],
		})
	}
	return results
}
