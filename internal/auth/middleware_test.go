package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/auth"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

func issueToken(t *testing.T, issuer *auth.TokenIssuer, role domain.Role) (string, *domain.User) {
	t.Helper()
	user := &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Name:      "Jordan Lee",
		Email:     "jordan@example.com",
		Role:      role,
	}
	token, err := issuer.Generate(user)
	require.NoError(t, err)
	return token, user
}

func TestMiddleware_Authenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	mw := auth.NewMiddleware(issuer, zap.NewNop())

	t.Run("valid token attaches the user context", func(t *testing.T) {
		token, user := issueToken(t, issuer, domain.RoleTeamLead)

		var seen *auth.UserContext
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = auth.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, user.ID, seen.UserID)
		assert.Equal(t, user.Name, seen.Name)
		assert.Equal(t, user.Email, seen.Email)
		assert.Equal(t, domain.RoleTeamLead, seen.Role)
	})

	t.Run("lowercase bearer scheme is accepted", func(t *testing.T) {
		token, _ := issueToken(t, issuer, domain.RoleAdmin)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body domain.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, domain.ErrorKindUnauthorized, body.Kind)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		otherIssuer := auth.NewTokenIssuer("other-secret", time.Hour)
		token, _ := issueToken(t, otherIssuer, domain.RoleAdmin)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddleware_RequireRole(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	mw := auth.NewMiddleware(issuer, zap.NewNop())

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	requestAs := func(role domain.Role) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		userCtx := &auth.UserContext{UserID: uuid.New(), Role: role}
		return req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	}

	t.Run("listed role passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw.RequireRole(domain.RoleAdmin, domain.RoleTeamLead)(okHandler).
			ServeHTTP(rec, requestAs(domain.RoleTeamLead))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unlisted role is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw.RequireRole(domain.RoleTeamLead)(okHandler).
			ServeHTTP(rec, requestAs(domain.RoleEmployee))

		assert.Equal(t, http.StatusForbidden, rec.Code)

		var body domain.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, domain.ErrorKindForbidden, body.Kind)
	})

	t.Run("admin gate rejects non-admins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw.RequireAdmin(okHandler).ServeHTTP(rec, requestAs(domain.RoleTeamLead))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing user context is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		mw.RequireAdmin(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
