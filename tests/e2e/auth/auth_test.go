//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"minimarket-backoffice/internal/domain/user"
	"minimarket-backoffice/internal/handler/dto/request"
	"minimarket-backoffice/internal/handler/dto/response"
	"minimarket-backoffice/tests/common/authtest"
	"minimarket-backoffice/tests/common/dbtest"
	"minimarket-backoffice/tests/common/httptest"
	"minimarket-backoffice/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
	productsURL = "/api/products"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", string(user.RoleAdmin))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleCashier))

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          "admin@example.com",
			password:       dbtest.FixturePassword,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nonexistent@example.com",
			password:       dbtest.FixturePassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "admin@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "inactive user",
			email:          "inactive@example.com",
			password:       dbtest.FixturePassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty email",
			email:          "",
			password:       dbtest.FixturePassword,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty password",
			email:          "admin@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var loginRes response.LoginResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &loginRes))
				require.NotEmpty(t, loginRes.AccessToken)
				require.Equal(t, tt.email, loginRes.User.Email)

				var lastLogin any
				err := s.DB.QueryRow(s.T().Context(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin)
			}
		})
	}
}

func (s *authSuite) TestLogout() {
	s.Run("logged-in user can log out", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "admin@example.com", dbtest.FixturePassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	s.Run("missing token is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestMe() {
	s.Run("returns the authenticated user without credentials", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "admin@example.com", dbtest.FixturePassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := w.Body.String()
		require.Contains(t, body, "admin@example.com")
		require.Contains(t, body, string(user.RoleAdmin))
		require.NotContains(t, body, "password")
	})

	s.Run("garbage token is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "invalid-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestRoleGuard() {
	s.Run("cashier cannot create products", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "cashier-guard@example.com", string(user.RoleCashier))
		reqBody := map[string]any{"name": "Yogur", "price": "3.50", "stock": 5}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, productsURL, reqBody, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("admin can create products", func() {
		t := s.T()

		token := authtest.LoginUser(s.T(), s.Router, "admin@example.com", dbtest.FixturePassword)
		reqBody := map[string]any{"name": "Yogur", "price": "3.50", "stock": 5}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, productsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}
