package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/identity"
	"github.com/TheLMNTRIX/Sangath/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const principalKey contextKey = "principal"

const bearerPrefix = "Bearer "

// AuthMiddleware resolves a bearer credential into a Principal: provider
// verification, provider profile fetch, then user-document lookup by
// phone key with a uid-query fallback for worker documents keyed by
// their generated id. Resolution is read-only.
type AuthMiddleware struct {
	identity identity.Client
	userRepo repository.UserRepository
	log      *logrus.Logger
}

func NewAuthMiddleware(identityClient identity.Client, userRepo repository.UserRepository, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identityClient,
		userRepo: userRepo,
		log:      log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		uid, err := m.identity.VerifyToken(r.Context(), token)
		if err != nil {
			// Surface the provider diagnostic, never the credential.
			m.log.Warnf("Token verification failed: %v", err)
			response.Unauthorized(w, fmt.Sprintf("Token verification failed: %v", err))
			return
		}

		account, err := m.identity.Account(r.Context(), uid)
		if err != nil {
			m.log.Warnf("Failed to fetch identity account: %v", err)
			response.Unauthorized(w, "Failed to resolve identity account")
			return
		}

		docID, user, err := m.resolveUser(r.Context(), account)
		if errors.Is(err, docstore.ErrNotFound) {
			response.NotFound(w, "User not found in database")
			return
		}
		if err != nil {
			m.log.Warnf("Failed to resolve user document: %v", err)
			response.UpstreamError(w, "Failed to resolve user", err)
			return
		}

		principal := &entity.Principal{
			Phone: account.Phone,
			UID:   account.UID,
			Role:  user.Role,
			DocID: docID,
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// resolveUser looks the backing document up by its historical phone key
// first, then falls back to a uid equality query. The dual lookup exists
// because the identifying key migrated over the system's life.
func (m *AuthMiddleware) resolveUser(ctx context.Context, account *identity.Account) (string, *entity.User, error) {
	if account.Phone != "" {
		user, err := m.userRepo.FindByKey(ctx, account.Phone)
		if err == nil {
			return account.Phone, user, nil
		}
		if !errors.Is(err, docstore.ErrNotFound) {
			return "", nil, err
		}
	}
	return m.userRepo.FindByUID(ctx, account.UID)
}

// WithPrincipal attaches a resolved principal to the context.
func WithPrincipal(ctx context.Context, principal *entity.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal extracts the resolved principal from the request context.
func GetPrincipal(ctx context.Context) (*entity.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*entity.Principal)
	return principal, ok
}
