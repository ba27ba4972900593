package acceptance

import (
	"net/http"

	"github.com/jskalc/vault-api/internal/dto"
)

func (s *Suite) TestShowUser() {
	token := s.registerVerified("me@example.com")

	resp := s.postJSON(http.MethodGet, "/v1/user", token, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var shown struct {
		Data dto.UserResource `json:"data"`
	}
	s.decode(resp, &shown)
	s.Equal("me@example.com", shown.Data.Email)
	s.Equal("John", shown.Data.Name)
	s.NotNil(shown.Data.EmailVerifiedAt)
}

func (s *Suite) TestUpdateUser_Profile() {
	token := s.registerVerified("profile@example.com")

	resp := s.postJSON(http.MethodPut, "/v1/user", token, dto.UpdateUserRequest{
		Name:    "Jane",
		Surname: "Roe",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var updated struct {
		Message string           `json:"message"`
		Data    dto.UserResource `json:"data"`
	}
	s.decode(resp, &updated)
	s.Equal("User was updated.", updated.Message)
	s.Equal("Jane", updated.Data.Name)
	s.Equal("Roe", updated.Data.Surname)
	// The address never changes through this route.
	s.Equal("profile@example.com", updated.Data.Email)
}

func (s *Suite) TestUpdateUser_Password() {
	token := s.registerVerified("newpass@example.com")

	resp := s.postJSON(http.MethodPut, "/v1/user", token, dto.UpdateUserRequest{
		Password:  "Changed123",
		CPassword: "Changed123",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	s.NotEmpty(s.login("newpass@example.com", "Changed123"))
}

func (s *Suite) TestDeleteUser_CascadesOwnedData() {
	token := s.registerVerified("goner@example.com")
	s.createLogin(token, loginPayload())

	resp := s.postJSON(http.MethodDelete, "/v1/user", token, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var success dto.SuccessResponse
	s.decode(resp, &success)
	s.Equal("User was deleted successfully.", success.Success)

	var users, logins, tokens int
	s.Require().NoError(s.Postgres.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users))
	s.Require().NoError(s.Postgres.DB.QueryRow(`SELECT COUNT(*) FROM logins`).Scan(&logins))
	s.Require().NoError(s.Postgres.DB.QueryRow(`SELECT COUNT(*) FROM access_tokens`).Scan(&tokens))
	s.Equal(0, users)
	s.Equal(0, logins)
	s.Equal(0, tokens)

	after := s.postJSON(http.MethodGet, "/v1/user", token, nil)
	defer after.Body.Close()
	s.Equal(http.StatusUnauthorized, after.StatusCode)
}
