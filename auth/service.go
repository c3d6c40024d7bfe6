package auth

import (
	"context"
	"fmt"

	"github.com/Supp140106/scribe/domain"
)

type service struct {
	verifier TokenVerifier
	users    UserStore
}

func NewService(verifier TokenVerifier, users UserStore) *service {
	return &service{verifier: verifier, users: users}
}

// Identify verifies the token and makes sure the identity exists locally so match results can reference it.
func (s *service) Identify(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrMissingToken
	}

	user, err := s.verifier.Verify(token)
	if err != nil {
		return domain.User{}, err
	}

	if err := s.users.UpsertUser(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("upsert identity %s: %w", user.Id, err)
	}

	return user, nil
}
