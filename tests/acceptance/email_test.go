package acceptance

import (
	"net/http"

	"github.com/jskalc/vault-api/internal/dto"
)

func (s *Suite) TestEmailUpdate_FullFlow() {
	token := s.registerVerified("before@example.com")

	resp := s.postJSON(http.MethodPost, "/v1/email/update", token, dto.EmailUpdateRequest{
		EmailUpdate: "after@example.com",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var success dto.SuccessResponse
	s.decode(resp, &success)
	s.Equal("We have e-mailed you your e-mail verification link!", success.Success)

	// The pending token carries the new address; the account still uses
	// the old one.
	var pending string
	err := s.Postgres.DB.QueryRow(
		`SELECT ev.token FROM email_verifications ev
		 JOIN users u ON u.id = ev.user_id WHERE u.email = 'before@example.com'`,
	).Scan(&pending)
	s.Require().NoError(err)

	verifyResp, err := http.Get(s.BaseURL + "/v1/email/verify/" + pending)
	s.Require().NoError(err)
	defer verifyResp.Body.Close()
	s.Equal(http.StatusOK, verifyResp.StatusCode)

	// Sessions from before the change are revoked.
	after := s.postJSON(http.MethodGet, "/v1/user", token, nil)
	defer after.Body.Close()
	s.Equal(http.StatusUnauthorized, after.StatusCode)

	// The new address logs in, the old one does not.
	s.NotEmpty(s.login("after@example.com", "Password123"))

	oldLogin := s.postJSON(http.MethodPost, "/v1/login", "", dto.LoginRequest{
		Email:    "before@example.com",
		Password: "Password123",
	})
	defer oldLogin.Body.Close()
	s.Equal(http.StatusUnauthorized, oldLogin.StatusCode)
}

func (s *Suite) TestEmailUpdate_TakenAddress() {
	s.registerVerified("holder@example.com")
	token := s.registerVerified("wanter@example.com")

	resp := s.postJSON(http.MethodPost, "/v1/email/update", token, dto.EmailUpdateRequest{
		EmailUpdate: "holder@example.com",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp dto.ValidationErrorResponse
	s.decode(resp, &errResp)
	s.Contains(errResp.Errors["email_update"], "This email is already in use.")
}

func (s *Suite) TestEmailUpdate_ConflictAtVerification() {
	tokenA := s.registerVerified("racer-a@example.com")

	respA := s.postJSON(http.MethodPost, "/v1/email/update", tokenA, dto.EmailUpdateRequest{
		EmailUpdate: "contested@example.com",
	})
	respA.Body.Close()
	s.Equal(http.StatusOK, respA.StatusCode)

	var pending string
	err := s.Postgres.DB.QueryRow(
		`SELECT ev.token FROM email_verifications ev
		 JOIN users u ON u.id = ev.user_id WHERE u.email = 'racer-a@example.com'`,
	).Scan(&pending)
	s.Require().NoError(err)

	// The contested address gets registered before the token is consumed.
	s.registerVerified("contested@example.com")

	verifyResp, err := http.Get(s.BaseURL + "/v1/email/verify/" + pending)
	s.Require().NoError(err)
	defer verifyResp.Body.Close()
	s.Equal(http.StatusConflict, verifyResp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(verifyResp, &errResp)
	s.Equal("This email is already in use.", errResp.Error)

	// The spent token cannot be retried.
	retry, err := http.Get(s.BaseURL + "/v1/email/verify/" + pending)
	s.Require().NoError(err)
	defer retry.Body.Close()
	s.Equal(http.StatusUnauthorized, retry.StatusCode)
}
