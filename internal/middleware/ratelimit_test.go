package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-samarth/core/internal/pkg/jwt"
)

func testContext(t *testing.T, authorization string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/cache/stats", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	return c
}

func TestHasValidTokenAcceptsSignedBearer(t *testing.T) {
	token, err := jwt.Sign("admin", time.Hour)
	require.NoError(t, err)

	c := testContext(t, "Bearer "+token)
	assert.True(t, hasValidToken(c),
		"a signed admin token must exempt the request from the limiter")
}

func TestHasValidTokenRejectsMissingAndGarbageTokens(t *testing.T) {
	assert.False(t, hasValidToken(testContext(t, "")))
	assert.False(t, hasValidToken(testContext(t, "Bearer not-a-jwt")))
}

func TestHasValidTokenRejectsExpiredToken(t *testing.T) {
	token, err := jwt.Sign("admin", -time.Minute)
	require.NoError(t, err)

	assert.False(t, hasValidToken(testContext(t, "Bearer "+token)))
}
