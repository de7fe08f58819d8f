//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"minimarket-backoffice/internal/handler/dto/request"
	"minimarket-backoffice/internal/pkg/cookie"
	"minimarket-backoffice/tests/common/dbtest"
	"minimarket-backoffice/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser logs in through the real endpoint and returns the access token
// from the session cookie.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, c, "no access token cookie in login response")
	require.NotEmpty(t, c.Value)

	return c.Value
}

// CreateAndLogin seeds a user with the fixture password and logs them in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()

	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, dbtest.FixturePassword)
}
