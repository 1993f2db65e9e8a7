// Package credentials manages the visitor's stored bearer token. The
// backend owns the token format and signature; this package only keeps it
// under the fixed key and refuses to hand out tokens that are already
// expired according to their exp claim.
package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/enjoypark/companion/internal/logger"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

// Provider stores and serves the bearer credential. It satisfies
// parkapi.TokenProvider.
type Provider struct {
	store  *redisstore.Store
	logger logger.Logger
	now    func() time.Time
}

// NewProvider creates a credential provider.
func NewProvider(store *redisstore.Store, log logger.Logger) *Provider {
	return &Provider{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// Set persists a new bearer token (sign-in).
func (p *Provider) Set(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("credentials: empty token")
	}
	return p.store.SaveCredential(ctx, token)
}

// Clear removes the stored token (sign-out).
func (p *Provider) Clear(ctx context.Context) error {
	return p.store.ClearCredential(ctx)
}

// Token returns the stored bearer token, or "" when none is stored or the
// stored one has expired. Expired tokens are cleared so later calls
// short-circuit without a parse.
func (p *Provider) Token(ctx context.Context) (string, error) {
	token, err := p.store.GetCredential(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", nil
	}

	if expired(token, p.now()) {
		p.logger.Info("stored credential expired, clearing")
		if err := p.store.ClearCredential(ctx); err != nil {
			p.logger.Warn("failed to clear expired credential", logger.Error(err))
		}
		return "", nil
	}
	return token, nil
}

// expired inspects the exp claim without verifying the signature; the
// backend verifies, we only avoid sending requests doomed to 401.
// Opaque (non-JWT) tokens are passed through untouched.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
