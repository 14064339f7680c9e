package redisrepo

import "testing"

func TestKeys(t *testing.T) {
	t.Parallel()

	if got := PostKey(6); got != "post:6" {
		t.Fatalf("PostKey(6) = %q", got)
	}
	if got := PostsKey(); got != "posts:all" {
		t.Fatalf("PostsKey() = %q", got)
	}
	if got := AccessTokenKey("default"); got != "session:access-token:default" {
		t.Fatalf("AccessTokenKey() = %q", got)
	}
}
