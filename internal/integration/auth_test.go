package integration_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/cinebook/cinema-booking-system/api"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthSuite struct {
	BaseSuite
}

func TestAuthIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestRegisterAndLogin() {
	t := s.T()

	registerBody := `{"name": "Carol", "email": "carol@example.com", "password": "Sup3rSecret!"}`
	loginBody := `{"email": "carol@example.com", "password": "Sup3rSecret!"}`

	scenarios := []Scenario{
		{
			Name:             "registration creates a regular user",
			Method:           http.MethodPost,
			URL:              "/auth/register",
			Body:             strings.NewReader(registerBody),
			ExpectedStatus:   http.StatusCreated,
			ExpectedResponse: `{"id": 0, "name": "Carol", "email": "carol@example.com", "role": "USER"}`,
		},
		{
			Name:           "registering the same email again conflicts",
			Method:         http.MethodPost,
			URL:            "/auth/register",
			Body:           strings.NewReader(registerBody),
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "login returns a usable bearer token",
			Method:         http.MethodPost,
			URL:            "/auth/login",
			Body:           strings.NewReader(loginBody),
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var tokenResp api.TokenResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&tokenResp))
				require.NotEmpty(t, tokenResp.Token)

				req, err := prepareRequest(http.MethodGet, "/bookings/user/0", nil, map[string]string{
					"Authorization": "Bearer " + tokenResp.Token,
				})
				require.NoError(t, err)

				// A forged-free token must pass authentication; the bad user
				// id then fails parameter validation, not auth.
				rec := newRecorderFor(app, req)
				require.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			Name:           "login with a wrong password is rejected",
			Method:         http.MethodPost,
			URL:            "/auth/login",
			Body:           strings.NewReader(`{"email": "carol@example.com", "password": "WrongSecret1!"}`),
			ExpectedStatus: http.StatusUnauthorized,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(t, s.app)
	}
}
