package redisrepo

import "fmt"

const (
	POST_KEY         = "post:%d" // <postID>
	POSTS_KEY        = "posts:all"
	ACCESS_TOKEN_KEY = "session:access-token:%s" // <profile>
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func PostsKey() string {
	return POSTS_KEY
}

func AccessTokenKey(profile string) string {
	return fmt.Sprintf(ACCESS_TOKEN_KEY, profile)
}
