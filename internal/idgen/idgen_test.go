package idgen

import (
	"math"
	"testing"

	"github.com/BloggingApp/post-editor/internal/model"
)

func postsWithIDs(ids ...int64) []model.Post {
	posts := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, model.Post{ID: model.ID(id)})
	}
	return posts
}

func TestNextID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		posts []model.Post
		want  int64
	}{
		{name: "nil", posts: nil, want: 0},
		{name: "empty", posts: []model.Post{}, want: 0},
		{name: "single zero", posts: postsWithIDs(0), want: 1},
		{name: "gaps", posts: postsWithIDs(0, 2, 5), want: 6},
		{name: "unordered", posts: postsWithIDs(9, 3, 4), want: 10},
		{name: "unassigned only", posts: []model.Post{{Title: "draft"}}, want: 0},
		{name: "unassigned mixed", posts: append(postsWithIDs(7), model.Post{Title: "draft"}), want: 8},
		{name: "below max", posts: postsWithIDs(math.MaxInt64 - 1), want: math.MaxInt64},
		{name: "exhausted", posts: postsWithIDs(3, math.MaxInt64), want: math.MaxInt64},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NextID(tc.posts); got != tc.want {
				t.Fatalf("NextID() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNextID_MaxPlusOneForGeneratedSets(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 50; n++ {
		ids := make([]int64, 0, n)
		var max int64
		for i := 0; i < n; i++ {
			id := int64((i * 37) % 101)
			ids = append(ids, id)
			if id > max {
				max = id
			}
		}
		if got := NextID(postsWithIDs(ids...)); got != max+1 {
			t.Fatalf("n=%d: NextID() = %d, want %d", n, got, max+1)
		}
	}
}

func TestNextID_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	posts := postsWithIDs(4, 1)
	NextID(posts)

	if *posts[0].ID != 4 || *posts[1].ID != 1 || len(posts) != 2 {
		t.Fatalf("input mutated: %+v", posts)
	}
}
