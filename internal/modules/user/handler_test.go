package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carpediction/server/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(newMemStore(), zap.NewNop())
	NewHandler(svc).RegisterRoutes(r.Group("/api"), middleware.Authenticate())
	return r
}

func request(t *testing.T, r *gin.Engine, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.TokenCookie {
			return ck
		}
	}
	t.Fatal("no usertoken cookie set")
	return nil
}

const regBody = `{"userName":"alice","email":"alice@example.com","password":"correct horse","passwordConf":"correct horse"}`

func TestRegisterSetsSessionCookie(t *testing.T) {
	r := newTestRouter()

	w, payload := request(t, r, http.MethodPost, "/api/register", regBody)
	require.Equal(t, http.StatusOK, w.Code)

	user, ok := payload["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password", "hash never leaves the server")

	ck := tokenCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.NotEmpty(t, ck.Value)

	// the fresh cookie authenticates immediately
	w, payload = request(t, r, http.MethodGet, "/api/loggedin", "", ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["verified"])
	assert.Equal(t, "alice", payload["username"])
}

func TestRegisterValidationShape(t *testing.T) {
	r := newTestRouter()

	w, payload := request(t, r, http.MethodPost, "/api/register",
		`{"userName":"a","email":"bad","password":"short","passwordConf":"other"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs, ok := payload["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "userName")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "passwordConf")
}

func TestRegisterDuplicateEmailShape(t *testing.T) {
	r := newTestRouter()

	w, _ := request(t, r, http.MethodPost, "/api/register", regBody)
	require.Equal(t, http.StatusOK, w.Code)

	w, payload := request(t, r, http.MethodPost, "/api/register", regBody)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := payload["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
}

func TestLoginAndLogout(t *testing.T) {
	r := newTestRouter()

	w, _ := request(t, r, http.MethodPost, "/api/register", regBody)
	require.Equal(t, http.StatusOK, w.Code)

	w, payload := request(t, r, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged in successfully!", payload["msg"])
	ck := tokenCookie(t, w)

	w, _ = request(t, r, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// logout clears the cookie
	w, _ = request(t, r, http.MethodGet, "/api/logout", "", ck)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := tokenCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestLoggedInRequiresAuth(t *testing.T) {
	r := newTestRouter()

	w, payload := request(t, r, http.MethodGet, "/api/loggedin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, payload["verified"])
}
