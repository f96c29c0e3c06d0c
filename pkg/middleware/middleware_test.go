package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubSessions struct {
	byToken map[string]*entity.Session
	err     error
}

func (s *stubSessions) Create(ctx context.Context, session *entity.Session) error { return nil }

func (s *stubSessions) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byToken[token], nil
}

func (s *stubSessions) Revoke(ctx context.Context, token string) error { return nil }

type stubUsers struct {
	byID map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.byID[id], nil
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}

func fixtures() (*stubSessions, *stubUsers, string) {
	fullName := "Darth Revan"
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "revan", FullName: &fullName, Email: "revan@sith.empire", IsActive: true}
	token := uuid.New()

	sessions := &stubSessions{byToken: map[string]*entity.Session{
		token.String(): {UserID: user.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	users := &stubUsers{byID: map[uuid.UUID]*entity.User{user.ID: user}}
	return sessions, users, token.String()
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUserFromContext(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(user.DisplayName()))
}

func TestAuthSession(t *testing.T) {
	sessions, users, token := fixtures()
	handler := AuthSession(sessions, users, "session_token", zap.NewNop())(http.HandlerFunc(echoUser))

	expiredToken := uuid.NewString()
	sessions.byToken[expiredToken] = &entity.Session{UserID: sessions.byToken[token].UserID, ExpiresAt: time.Now().Add(-time.Minute)}

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{name: "bearer", header: "Bearer " + token, want: http.StatusOK},
		{name: "cookie", cookie: token, want: http.StatusOK},
		{name: "missing", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "not a uuid", header: "Bearer vader", want: http.StatusUnauthorized},
		{name: "unknown session", header: "Bearer " + uuid.NewString(), want: http.StatusUnauthorized},
		{name: "expired session", header: "Bearer " + expiredToken, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if tt.want == http.StatusOK && rec.Body.String() != "Darth Revan" {
				t.Fatalf("unexpected user in context: %q", rec.Body.String())
			}
		})
	}
}

func TestAuthSession_StoreError(t *testing.T) {
	sessions, users, token := fixtures()
	sessions.err = errors.New("connection reset")
	handler := AuthSession(sessions, users, "session_token", zap.NewNop())(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRequireSessionOrRedirect(t *testing.T) {
	sessions, users, token := fixtures()
	handler := RequireSessionOrRedirect(sessions, users, "session_token", "/", zap.NewNop())(http.HandlerFunc(echoUser))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d", rec.Code)
	}
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("the dark side")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON body, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"status":false`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestLogger_PassesThroughStatus(t *testing.T) {
	handler := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("loading"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/bookings", nil))

	if rec.Code != http.StatusAccepted || rec.Body.String() != "loading" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
