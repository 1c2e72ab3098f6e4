package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviehub/backend/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, claims auth.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func validClaims(id string, exp time.Time) auth.Claims {
	return auth.Claims{
		ID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

// assertSingleJSONBody checks the body holds exactly one JSON document.
func assertSingleJSONBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(body))
	var first map[string]any
	require.NoError(t, dec.Decode(&first))
	var second any
	assert.ErrorIs(t, dec.Decode(&second), io.EOF, "response body holds more than one document: %s", body)
	return first
}

func TestRequireBearer(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	valid := signTestToken(t, testSecret, validClaims("user-42", time.Now().Add(time.Hour)))
	expired := signTestToken(t, testSecret, validClaims("user-42", time.Now().Add(-time.Second)))
	foreign := signTestToken(t, "another-secret", validClaims("user-42", time.Now().Add(time.Hour)))

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"no header", "", http.StatusUnauthorized, "Tidak diotorisasi, tidak ada token."},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "Tidak diotorisasi, tidak ada token."},
		{"lowercase scheme", "bearer " + valid, http.StatusUnauthorized, "Tidak diotorisasi, tidak ada token."},
		{"bare token", valid, http.StatusUnauthorized, "Tidak diotorisasi, tidak ada token."},
		{"scheme only", "Bearer", http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"scheme and space", "Bearer ", http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"scheme glued to token", "Bearer" + valid, http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"double space before token", "Bearer  " + valid, http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"tab before token", "Bearer\t" + valid, http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"trailing field", "Bearer " + valid + " extra", http.StatusOK, "Anda berhasil mengakses rute yang dilindungi, user ID: user-42"},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"wrong key", "Bearer " + foreign, http.StatusUnauthorized, "Tidak diotorisasi, token gagal."},
		{"valid token", "Bearer " + valid, http.StatusOK, "Anda berhasil mengakses rute yang dilindungi, user ID: user-42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var header http.Header
			if tc.header != "" {
				header = http.Header{"Authorization": {tc.header}}
			}
			rec := do(t, h, http.MethodGet, "/api/protected", nil, header)
			assert.Equal(t, tc.wantStatus, rec.Code)
			body := assertSingleJSONBody(t, rec.Body.Bytes())
			assert.Equal(t, tc.wantMsg, body["message"])
		})
	}
}

func TestRequireBearer_DoesNotCallNextOnReject(t *testing.T) {
	s := newTestServer(t)
	called := false
	h := s.requireBearer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, header := range []string{"", "Bearer", "Bearer nope"} {
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	assert.False(t, called)
}

func TestRequireBearer_TokenFromLoginExpires(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/auth/register", creds("dave", "pw"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/auth/login", creds("dave", "pw"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var login loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	var claims auth.Claims
	_, _, err := jwt.NewParser().ParseUnverified(login.Token, &claims)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	// Same subject, re-signed with an expiry in the past.
	stale := signTestToken(t, testSecret, validClaims(claims.ID, time.Now().Add(-time.Minute)))
	rec = do(t, h, http.MethodGet, "/api/protected", nil, bearer(stale))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/protected", nil, bearer(login.Token))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusRecorder_SingleStatus(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: inner, status: http.StatusOK}

	rec.WriteHeader(http.StatusUnauthorized)
	rec.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusUnauthorized, rec.status)
	assert.Equal(t, http.StatusUnauthorized, inner.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	s := newTestServer(t)

	h := s.loggingMiddleware(s.recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Terjadi kesalahan pada server.", decodeMessage(t, rec))

	// A panic after the response started must not produce a second one.
	h = s.loggingMiddleware(s.recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, messageResponse{Message: "partial"})
		panic("late")
	})))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := assertSingleJSONBody(t, rec.Body.Bytes())
	assert.Equal(t, "partial", body["message"])
}

func TestRequestIDMiddleware(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/health", nil, nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = do(t, h, http.MethodGet, "/health", nil, http.Header{requestIDHeader: {"req-1"}})
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(t)
	s.log = zerolog.New(&buf)

	rec := do(t, s.Handler(), http.MethodGet, "/api/protected", nil, http.Header{requestIDHeader: {"req-7"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["message"])
	assert.Equal(t, "/api/protected", entry["path"])
	assert.EqualValues(t, http.StatusUnauthorized, entry["status"])
	assert.Equal(t, "req-7", entry["request_id"])
}

func TestCORSMiddleware(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodOptions, "/api/auth/login", nil, http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"POST"},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	rec = do(t, h, http.MethodGet, "/health", nil, http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wildcard := corsMiddleware([]string{"*"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.example")
	wildcard.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
