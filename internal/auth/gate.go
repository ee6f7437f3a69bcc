// Package auth is the access gate in front of the moderation engine. It turns
// a bearer token into a verified player id; nothing past the gate accepts an
// identity from the request body.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"guardian-beam/internal/api"
	"guardian-beam/internal/config"
	"guardian-beam/internal/constants"
	"guardian-beam/internal/domain"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Verifier resolves a bearer token to the player it identifies.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify accepts HS256 tokens signed with the shared secret. The subject
// claim is the player id.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", domain.NewUnauthenticatedError("verify token", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.NewUnauthenticatedError("verify token", errors.New("token has no subject"))
	}
	return claims.Subject, nil
}

type SlackVerifier struct {
	slack *api.SlackClient
}

func NewSlackVerifier(slack *api.SlackClient) *SlackVerifier {
	return &SlackVerifier{slack: slack}
}

// Verify accepts Slack user tokens from the configured workspace. The Slack
// user id is the player id.
func (v *SlackVerifier) Verify(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	identity, err := v.slack.AuthTest(ctx, token)
	if err != nil {
		return "", domain.NewUnauthenticatedError("verify slack token", err)
	}
	if identity.TeamID != v.slack.TeamID() {
		return "", domain.NewUnauthenticatedError("verify slack token",
			fmt.Errorf("token belongs to team %s", identity.TeamID))
	}
	return identity.UserID, nil
}

func NewVerifier(cfg *config.Config, slack *api.SlackClient) (Verifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		return NewJWTVerifier(cfg.JWTSecret), nil
	case config.AuthModeSlack:
		return NewSlackVerifier(slack), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

type playerKey struct{}

func WithPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, playerKey{}, playerID)
}

// PlayerID returns the verified caller, if the request passed the gate.
func PlayerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(playerKey{}).(string)
	return id, ok && id != ""
}

// NewInterceptor rejects unary calls without a valid bearer token and stores
// the verified player id on the handler context.
func NewInterceptor(v Verifier, logger zerolog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, ok := bearerToken(req.Header().Get("Authorization"))
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing bearer token"))
			}

			playerID, err := v.Verify(ctx, token)
			if err != nil {
				logger.Debug().Err(err).Str("procedure", req.Spec().Procedure).Msg("token rejected")
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			logger.Debug().Str("player_id", playerID).Str("procedure", req.Spec().Procedure).Msg("caller verified")
			return next(WithPlayerID(ctx, playerID), req)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
