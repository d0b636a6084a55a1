package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	userDomain "goban/internal/domain/user"
	repo "goban/internal/repository"
	authUC "goban/internal/usecase/auth"
)

func newTestHandler() *AuthHandler {
	usecase := authUC.NewAuthUsecaseHandler(repo.NewMapUserStorage(), repo.NewSessionMapStorage())
	return NewAuthHandler(zap.NewNop().Sugar(), usecase, 1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	if cookie != "" {
		req.Header.Set("Cookie", sessionCookieName+"="+cookie)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// sessionFrom вытаскивает значение cookie sessionID из ответа.
func sessionFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c.Value
		}
	}
	t.Fatal("no sessionID cookie in response")
	return ""
}

type envelope struct {
	Status int             `json:"Status"`
	Body   json.RawMessage `json:"Body"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if into != nil {
		if err := json.Unmarshal(env.Body, into); err != nil {
			t.Fatalf("decode body: %v (%s)", err, env.Body)
		}
	}
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Register, "/auth/register", userDomain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var profile userDomain.ProfileResponse
	decodeBody(t, rec, &profile)
	if profile.Username != "alice" {
		t.Errorf("profile username = %q, want alice", profile.Username)
	}
	if profile.ID == "" {
		t.Error("profile ID is empty")
	}

	session := sessionFrom(t, rec)
	if session == "" {
		t.Fatal("empty session cookie")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	handler := newTestHandler()

	if rec := postJSON(t, handler.Register, "/auth/register", userDomain.RegisterRequest{Username: "alice", Password: "one"}, ""); rec.Code != http.StatusOK {
		t.Fatalf("first register status = %d", rec.Code)
	}
	rec := postJSON(t, handler.Register, "/auth/register", userDomain.RegisterRequest{Username: "alice", Password: "two"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", rec.Code)
	}
}

func TestRegisterRejectsUnknownFields(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Register, "/auth/register", map[string]any{
		"username": "alice",
		"password": "secret",
		"is_admin": true,
	}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown field", rec.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	handler := newTestHandler()

	postJSON(t, handler.Register, "/auth/register", userDomain.RegisterRequest{Username: "alice", Password: "secret"}, "")

	tests := []struct {
		name     string
		username string
		password string
		want     int
	}{
		{name: "ok", username: "alice", password: "secret", want: http.StatusOK},
		{name: "wrong password", username: "alice", password: "guess", want: http.StatusBadRequest},
		{name: "unknown user", username: "bob", password: "secret", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler.Login, "/auth/login", userDomain.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMeAndLogout(t *testing.T) {
	handler := newTestHandler()

	rec := postJSON(t, handler.Register, "/auth/register", userDomain.RegisterRequest{Username: "alice", Password: "secret"}, "")
	session := sessionFrom(t, rec)

	meReq := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	meReq.Header.Set("Cookie", sessionCookieName+"="+session)
	meRec := httptest.NewRecorder()
	handler.Me(meRec, meReq)
	if meRec.Code != http.StatusOK {
		t.Fatalf("me status = %d", meRec.Code)
	}
	var profile userDomain.ProfileResponse
	decodeBody(t, meRec, &profile)
	if profile.Username != "alice" {
		t.Errorf("me username = %q, want alice", profile.Username)
	}

	if rec := postJSON(t, handler.Logout, "/auth/logout", nil, session); rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	meRec = httptest.NewRecorder()
	handler.Me(meRec, meReq)
	if meRec.Code != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want 401", meRec.Code)
	}
}

func TestMeWithoutCookie(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRegisterMethodNotAllowed(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/auth/register", nil)
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
