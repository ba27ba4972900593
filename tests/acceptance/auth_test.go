package acceptance

import (
	"net/http"

	"github.com/jskalc/vault-api/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	resp := s.postJSON(http.MethodPost, "/v1/register", "", dto.RegisterRequest{
		Name:      "John",
		Surname:   "Doe",
		Email:     "test@example.com",
		Password:  "Password123",
		CPassword: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var created dto.MessageDataResponse
	s.decode(resp, &created)
	s.Equal("User was created.", created.Message)

	// The account starts unverified with a pending token on file.
	var count int
	err := s.Postgres.DB.QueryRow(
		`SELECT COUNT(*) FROM email_verifications ev
		 JOIN users u ON u.id = ev.user_id WHERE u.email = 'test@example.com'`,
	).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	s.register("duplicate@example.com")

	resp := s.postJSON(http.MethodPost, "/v1/register", "", dto.RegisterRequest{
		Name:      "John",
		Surname:   "Doe",
		Email:     "duplicate@example.com",
		Password:  "Password123",
		CPassword: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp dto.ValidationErrorResponse
	s.decode(resp, &errResp)
	s.Contains(errResp.Errors["email"], "This email is already in use.")
}

func (s *Suite) TestRegister_PasswordMismatch() {
	resp := s.postJSON(http.MethodPost, "/v1/register", "", dto.RegisterRequest{
		Name:      "John",
		Surname:   "Doe",
		Email:     "mismatch@example.com",
		Password:  "Password123",
		CPassword: "Different123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	resp := s.postJSON(http.MethodPost, "/v1/register", "", dto.RegisterRequest{
		Name:      "John",
		Surname:   "Doe",
		Email:     "weak@example.com",
		Password:  "alllowercase",
		CPassword: "alllowercase",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp dto.ValidationErrorResponse
	s.decode(resp, &errResp)
	s.NotEmpty(errResp.Errors["password"])
}

func (s *Suite) TestRegister_InvalidName() {
	resp := s.postJSON(http.MethodPost, "/v1/register", "", dto.RegisterRequest{
		Name:      "J",
		Surname:   "Doe",
		Email:     "shortname@example.com",
		Password:  "Password123",
		CPassword: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *Suite) TestLogin_RequiresVerifiedEmail() {
	s.register("unverified@example.com")

	resp := s.postJSON(http.MethodPost, "/v1/login", "", dto.LoginRequest{
		Email:    "unverified@example.com",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("You first need to verify your email.", errResp.Error)
}

func (s *Suite) TestLogin_AfterVerification() {
	userID := s.register("verified@example.com")
	s.verify(userID)

	token := s.login("verified@example.com", "Password123")
	s.NotEmpty(token)
}

func (s *Suite) TestLogin_InvalidCredentials() {
	resp := s.postJSON(http.MethodPost, "/v1/login", "", dto.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("User could not be authenticated.", errResp.Error)
}

func (s *Suite) TestLogin_WrongPassword() {
	userID := s.register("wrongpass@example.com")
	s.verify(userID)

	resp := s.postJSON(http.MethodPost, "/v1/login", "", dto.LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "WrongPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestVerify_InvalidToken() {
	resp, err := http.Get(s.BaseURL + "/v1/email/verify/not-a-real-token")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("This e-mail verification token is invalid.", errResp.Error)
}

func (s *Suite) TestVerify_TokenIsSingleUse() {
	userID := s.register("singleuse@example.com")
	token := s.verificationToken(userID)

	resp1, err := http.Get(s.BaseURL + "/v1/email/verify/" + token)
	s.Require().NoError(err)
	resp1.Body.Close()
	s.Equal(http.StatusOK, resp1.StatusCode)

	resp2, err := http.Get(s.BaseURL + "/v1/email/verify/" + token)
	s.Require().NoError(err)
	defer resp2.Body.Close()
	s.Equal(http.StatusUnauthorized, resp2.StatusCode)
}

func (s *Suite) TestLogout_RevokesToken() {
	token := s.registerVerified("logout@example.com")

	resp := s.postJSON(http.MethodDelete, "/v1/logout", token, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var success dto.SuccessResponse
	s.decode(resp, &success)
	s.Equal("User has been logged out.", success.Success)

	// The revoked token no longer opens protected routes.
	after := s.postJSON(http.MethodGet, "/v1/user", token, nil)
	defer after.Body.Close()
	s.Equal(http.StatusUnauthorized, after.StatusCode)
}

func (s *Suite) TestProtectedRoute_RequiresToken() {
	resp := s.postJSON(http.MethodGet, "/v1/user", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
