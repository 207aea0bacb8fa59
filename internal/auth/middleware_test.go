package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupProtectedRouter(t *testing.T) (*gin.Engine, *TokenManager) {
	t.Helper()

	tokens := newTestTokenManager(t, time.Now())
	router := gin.New()
	router.GET("/protected", NewMiddleware(tokens).RequireToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUserID(c)})
	})
	return router, tokens
}

func serve(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRequireToken_ValidToken(t *testing.T) {
	router, tokens := setupProtectedRouter(t)
	token, err := tokens.Issue("user-42")
	require.NoError(t, err)

	for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
		rr := serve(router, scheme+" "+token)
		assert.Equal(t, http.StatusOK, rr.Code, scheme)
		assert.Equal(t, "user-42", decode(t, rr)["user"])
	}
}

func TestRequireToken_MissingHeader(t *testing.T) {
	router, _ := setupProtectedRouter(t)

	rr := serve(router, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "authorization token is required", body["msg"])
}

func TestRequireToken_InvalidCredentials(t *testing.T) {
	router, _ := setupProtectedRouter(t)

	expiredManager := newTestTokenManager(t, time.Now().Add(-48*time.Hour))
	expired, err := expiredManager.Issue("user-1")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"wrong scheme":  "Basic dXNlcjpwYXNz",
		"missing token": "Bearer ",
		"garbage":       "Bearer abc.def.ghi",
		"expired":       "Bearer " + expired,
	} {
		t.Run(name, func(t *testing.T) {
			rr := serve(router, header)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "invalid or expired token", decode(t, rr)["msg"])
		})
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetUserID(c))
}
