package history

import (
	"context"
	"errors"
	"net/http"

	"github.com/Supp140106/scribe/auth"
	"github.com/Supp140106/scribe/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
)

const DefaultLimit = 50

type Store interface {
	GetUserById(ctx context.Context, id string) (domain.User, error)
	ListMatchHistory(ctx context.Context, userId string, limit int) ([]domain.MatchOutcome, error)
}

type historyResponse struct {
	Name    string                `json:"name"`
	Picture string                `json:"picture"`
	History []domain.MatchOutcome `json:"history"`
}

type historyHandler struct {
	store Store
	limit int
}

func NewHistoryHandler(store Store) *historyHandler {
	return &historyHandler{store: store, limit: DefaultLimit}
}

// NoStore keeps per-user responses out of shared caches.
func NoStore() gin.HandlerFunc {
	return cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})
}

// GetHistoryHandler returns the caller's latest matches, newest first.
func (h *historyHandler) GetHistoryHandler(ctx *gin.Context) {
	user, ok := auth.UserFrom(ctx)
	if !ok {
		ctx.String(http.StatusUnauthorized, auth.ErrMissingTokenStr)
		return
	}

	profile, err := h.store.GetUserById(ctx.Request.Context(), user.Id)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	matches, err := h.store.ListMatchHistory(ctx.Request.Context(), user.Id, h.limit)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	if matches == nil {
		matches = []domain.MatchOutcome{}
	}

	ctx.JSON(http.StatusOK, historyResponse{
		Name:    profile.DisplayName,
		Picture: profile.AvatarURL,
		History: matches,
	})
}

func (h *historyHandler) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		ctx.String(http.StatusNotFound, "user-not-found")
	case errors.Is(err, context.DeadlineExceeded):
		ctx.String(http.StatusGatewayTimeout, auth.ErrServerTimeoutStr)
	default:
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("history lookup failed")
		ctx.String(http.StatusInternalServerError, auth.ErrUnknownStr)
	}
}
