package auth

import (
	"context"

	"github.com/Supp140106/scribe/domain"
)

type TokenVerifier interface {
	Verify(token string) (domain.User, error)
}

type UserStore interface {
	UpsertUser(ctx context.Context, user domain.User) error
}
