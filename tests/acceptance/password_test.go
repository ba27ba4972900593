package acceptance

import (
	"net/http"

	"github.com/jskalc/vault-api/internal/dto"
)

func (s *Suite) TestPasswordReset_FullFlow() {
	s.registerVerified("reset@example.com")

	createResp := s.postJSON(http.MethodPost, "/v1/password/create", "", dto.PasswordCreateRequest{
		Email:       "reset@example.com",
		CallbackURL: "https://app.example.com/reset",
	})
	defer createResp.Body.Close()
	s.Equal(http.StatusOK, createResp.StatusCode)

	var created dto.SuccessResponse
	s.decode(createResp, &created)
	s.Equal("We have e-mailed you your password reset link!", created.Success)

	token := s.resetToken("reset@example.com")

	resetResp := s.postJSON(http.MethodPost, "/v1/password/reset", "", dto.PasswordResetRequest{
		Email:     "reset@example.com",
		Password:  "NewPassword123",
		CPassword: "NewPassword123",
		Token:     token,
	})
	defer resetResp.Body.Close()
	s.Equal(http.StatusOK, resetResp.StatusCode)

	var reset dto.SuccessResponse
	s.decode(resetResp, &reset)
	s.Equal("Your password has been reset.", reset.Success)

	// Old password out, new password in.
	oldResp := s.postJSON(http.MethodPost, "/v1/login", "", dto.LoginRequest{
		Email:    "reset@example.com",
		Password: "Password123",
	})
	oldResp.Body.Close()
	s.Equal(http.StatusUnauthorized, oldResp.StatusCode)

	s.NotEmpty(s.login("reset@example.com", "NewPassword123"))
}

func (s *Suite) TestPasswordCreate_UnknownEmail() {
	resp := s.postJSON(http.MethodPost, "/v1/password/create", "", dto.PasswordCreateRequest{
		Email: "ghost@example.com",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("We cannot find a user with that e-mail address.", errResp.Error)
}

func (s *Suite) TestPasswordReset_InvalidToken() {
	s.registerVerified("badtoken@example.com")

	resp := s.postJSON(http.MethodPost, "/v1/password/reset", "", dto.PasswordResetRequest{
		Email:     "badtoken@example.com",
		Password:  "NewPassword123",
		CPassword: "NewPassword123",
		Token:     "never-issued",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("This password reset token is invalid.", errResp.Error)
}

func (s *Suite) TestPasswordReset_TokenIsSingleUse() {
	s.registerVerified("once@example.com")

	createResp := s.postJSON(http.MethodPost, "/v1/password/create", "", dto.PasswordCreateRequest{
		Email: "once@example.com",
	})
	createResp.Body.Close()
	token := s.resetToken("once@example.com")

	first := s.postJSON(http.MethodPost, "/v1/password/reset", "", dto.PasswordResetRequest{
		Email:     "once@example.com",
		Password:  "NewPassword123",
		CPassword: "NewPassword123",
		Token:     token,
	})
	first.Body.Close()
	s.Equal(http.StatusOK, first.StatusCode)

	second := s.postJSON(http.MethodPost, "/v1/password/reset", "", dto.PasswordResetRequest{
		Email:     "once@example.com",
		Password:  "OtherPassword123",
		CPassword: "OtherPassword123",
		Token:     token,
	})
	defer second.Body.Close()
	s.Equal(http.StatusUnauthorized, second.StatusCode)
}

func (s *Suite) TestPasswordReset_ReissueReplacesToken() {
	s.registerVerified("reissue@example.com")

	first := s.postJSON(http.MethodPost, "/v1/password/create", "", dto.PasswordCreateRequest{
		Email: "reissue@example.com",
	})
	first.Body.Close()
	firstToken := s.resetToken("reissue@example.com")

	second := s.postJSON(http.MethodPost, "/v1/password/create", "", dto.PasswordCreateRequest{
		Email: "reissue@example.com",
	})
	second.Body.Close()
	secondToken := s.resetToken("reissue@example.com")
	s.NotEqual(firstToken, secondToken)

	resp := s.postJSON(http.MethodPost, "/v1/password/reset", "", dto.PasswordResetRequest{
		Email:     "reissue@example.com",
		Password:  "NewPassword123",
		CPassword: "NewPassword123",
		Token:     firstToken,
	})
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
