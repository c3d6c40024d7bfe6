package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Supp140106/scribe/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UserKey is the gin context key holding the verified domain.User.
const UserKey = "user"

type Identifier interface {
	Identify(ctx context.Context, token string) (domain.User, error)
}

type authHandler struct {
	identifier Identifier
}

func NewAuthHandler(identifier Identifier) *authHandler {
	return &authHandler{identifier: identifier}
}

// tokenFrom looks at the cookie first, then the bearer header, then the query string.
// Browsers cannot set headers on a websocket handshake, hence the query fallback.
func tokenFrom(ctx *gin.Context) string {
	if token, err := ctx.Cookie("token"); err == nil && token != "" {
		return token
	}
	if header := ctx.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ctx.Query("token")
}

func (ah *authHandler) RequireAuthMiddleware(trollTime time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := ah.identifier.Identify(ctx.Request.Context(), tokenFrom(ctx))

		if err != nil {
			switch {
			case errors.Is(err, ErrMissingToken):
				ctx.String(http.StatusUnauthorized, ErrMissingTokenStr)
			case errors.Is(err, domain.ErrInvalidSigningAlg), errors.Is(err, domain.ErrInvalidTokenSignature), errors.Is(err, domain.ErrCorruptedToken):
				time.Sleep(trollTime)
				ctx.Status(http.StatusUnauthorized)
			case errors.Is(err, domain.ErrExpiredToken):
				ctx.String(http.StatusUnauthorized, ErrExpiredTokenStr)
			case errors.Is(err, context.DeadlineExceeded):
				ctx.String(http.StatusGatewayTimeout, ErrServerTimeoutStr)
			default:
				log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("identity resolution failed")
				ctx.String(http.StatusInternalServerError, ErrUnknownStr)
			}
			ctx.Abort()
			return
		}

		ctx.Set(UserKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware lets guests through. A valid token attaches the identity, anything else is ignored.
func (ah *authHandler) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFrom(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		user, err := ah.identifier.Identify(ctx.Request.Context(), token)
		if err != nil {
			log.Debug().Err(err).Str("ip", ctx.ClientIP()).Msg("ignoring bad token, continuing as guest")
			ctx.Next()
			return
		}

		ctx.Set(UserKey, user)
		ctx.Next()
	}
}

// UserFrom returns the identity attached by one of the middlewares.
func UserFrom(ctx *gin.Context) (domain.User, bool) {
	v, ok := ctx.Get(UserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
