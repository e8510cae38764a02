package state

import (
	"context"
	"net/http"

	"resto-app/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware resolves the client id from the access token, issuing a new
// client id and cookie when the token is missing or invalid.
func Middleware(tokens *Tokens, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := ExtractAccessToken(r); raw != "" {
				if clientID, err := tokens.Parse(raw); err == nil {
					next.ServeHTTP(w, r.WithContext(withClient(r.Context(), clientID)))
					return
				}
			}

			clientID := uuid.NewString()
			token, err := tokens.Issue(clientID)
			if err != nil {
				logger.FromCtx(r.Context()).Error("failed to issue client token", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(tokens.TTL().Seconds()),
				HttpOnly: true,
				Secure:   secureCookie,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(withClient(withIssued(r.Context()), clientID)))
		})
	}
}

func withClient(ctx context.Context, clientID string) context.Context {
	return logger.WithFields(WithClientID(ctx, clientID), zap.String("client_id", clientID))
}
