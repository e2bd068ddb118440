package identity

import (
	"context"
	"net/http"
)

// User is the authenticated principal attached to mutating requests.
type User struct {
	ID       string
	Username string
	Email    string
}

// Resolver extracts the request principal. The demo deployment runs a
// static resolver; a real token verifier slots in behind the same
// interface without touching the HTTP layer.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (User, error)
}

// StaticResolver returns the same demo user for every request.
type StaticResolver struct {
	User User
}

func NewDemoResolver() StaticResolver {
	return StaticResolver{
		User: User{
			ID:       "user_12345",
			Username: "demo_user",
			Email:    "demo@squpe.app",
		},
	}
}

func (s StaticResolver) Resolve(_ context.Context, _ *http.Request) (User, error) {
	return s.User, nil
}
