// Package idgen synthesizes post identifiers on the client without a round trip.
//
// The ids are not collision-free: two creators working from the same snapshot
// compute the same value and the second create is rejected by the server.
package idgen

import (
	"math"

	"github.com/BloggingApp/post-editor/internal/model"
)

// NextID returns 0 for a collection without assigned ids, otherwise max(id)+1.
// Once math.MaxInt64 is taken the id space is exhausted and NextID returns
// math.MaxInt64 itself, which the server rejects as a duplicate.
func NextID(posts []model.Post) int64 {
	var (
		max   int64
		found bool
	)
	for _, post := range posts {
		if !post.HasID() {
			continue
		}
		if !found || *post.ID > max {
			max = *post.ID
			found = true
		}
	}

	if !found {
		return 0
	}
	if max == math.MaxInt64 {
		return max
	}

	return max + 1
}
