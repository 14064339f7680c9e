package session

import (
	"context"

	"github.com/BloggingApp/post-editor/internal/model"
)

// Provider is the identity provider's session object.
type Provider interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	// Changes delivers every provider-driven authentication transition in order.
	Changes() <-chan bool
	GetUser(ctx context.Context) (*model.User, error)
	GetAccessToken(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}
