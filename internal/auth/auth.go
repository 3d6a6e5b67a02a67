package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wicaksana/hr-workflow/internal/account"
)

// Actor is the authenticated caller attached to the request context.
type Actor struct {
	AccountID account.ID
	Email     string
	IsManager bool
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type actorCtxKey struct{}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(*Actor)
	return actor, ok && actor != nil
}
