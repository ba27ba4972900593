package acceptance

import (
	"fmt"
	"net/http"

	"github.com/jskalc/vault-api/internal/dto"
)

func loginPayload() dto.CreateLoginRequest {
	return dto.CreateLoginRequest{
		WebsiteName:    "My Bank",
		WebsiteAddress: "https://online.mybank.com/signin",
		Username:       "john.doe",
		Password:       "bank-password",
	}
}

// createLogin stores a record through the API and returns its id.
func (s *Suite) createLogin(token string, payload dto.CreateLoginRequest) string {
	s.T().Helper()

	resp := s.postJSON(http.MethodPost, "/v1/logins", token, payload)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Message string            `json:"message"`
		Data    dto.LoginResource `json:"data"`
	}
	s.decode(resp, &created)
	s.Require().NotEmpty(created.Data.ID)
	return created.Data.ID
}

func (s *Suite) TestCreateLogin_DerivesDomain() {
	token := s.registerVerified("vault@example.com")

	resp := s.postJSON(http.MethodPost, "/v1/logins", token, loginPayload())
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Message string            `json:"message"`
		Data    dto.LoginResource `json:"data"`
	}
	s.decode(resp, &created)
	s.Equal("Login was created.", created.Message)
	s.Equal("mybank.com", created.Data.Domain)
	s.Equal("john.doe", created.Data.Username)
	s.Equal("bank-password", created.Data.Password)
}

func (s *Suite) TestCreateLogin_EncryptedAtRest() {
	token := s.registerVerified("atrest@example.com")
	id := s.createLogin(token, loginPayload())

	// The raw rows never hold the plaintext secret.
	var storedUsername, storedPassword string
	err := s.Postgres.DB.QueryRow(
		`SELECT username, password FROM logins WHERE id = $1`, id,
	).Scan(&storedUsername, &storedPassword)
	s.Require().NoError(err)
	s.NotEqual("john.doe", storedUsername)
	s.NotEqual("bank-password", storedPassword)
}

func (s *Suite) TestCreateLogin_IgnoresSuppliedOwner() {
	victimToken := s.registerVerified("victim@example.com")
	s.createLogin(victimToken, loginPayload())
	attackerToken := s.registerVerified("attacker@example.com")

	// A user_id in the body has no field to land in and is dropped.
	resp := s.postJSON(http.MethodPost, "/v1/logins", attackerToken, map[string]string{
		"website_name":    "Sneaky",
		"website_address": "https://sneaky.example.com",
		"username":        "x",
		"password":        "y",
		"user_id":         "someone-else",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	listResp := s.postJSON(http.MethodGet, "/v1/logins", attackerToken, nil)
	defer listResp.Body.Close()
	s.Equal(http.StatusOK, listResp.StatusCode)

	var page dto.LoginPage
	s.decode(listResp, &page)
	s.Equal(1, page.Total)
	s.Equal("Sneaky", page.Data[0].WebsiteName)
}

func (s *Suite) TestGetLogin_OwnerOnly() {
	ownerToken := s.registerVerified("owner@example.com")
	id := s.createLogin(ownerToken, loginPayload())
	otherToken := s.registerVerified("other@example.com")

	resp := s.postJSON(http.MethodGet, "/v1/logins/"+id, otherToken, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("You cannot access this resource.", errResp.Error)
}

func (s *Suite) TestGetLogin_Missing() {
	token := s.registerVerified("missing@example.com")
	s.createLogin(token, loginPayload())

	resp := s.postJSON(http.MethodGet, "/v1/logins/6f7c2e6c-0000-0000-0000-000000000000", token, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("Resource does not exist.", errResp.Error)
}

func (s *Suite) TestListLogins_Paginated() {
	token := s.registerVerified("pages@example.com")
	for i := 0; i < 7; i++ {
		payload := loginPayload()
		payload.WebsiteName = fmt.Sprintf("Site %d", i)
		s.createLogin(token, payload)
	}

	resp := s.postJSON(http.MethodGet, "/v1/logins?page=2", token, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var page dto.LoginPage
	s.decode(resp, &page)
	s.Equal(7, page.Total)
	s.Equal(2, page.Page)
	s.Equal(5, page.PerPage)
	s.Len(page.Data, 2)
}

func (s *Suite) TestListLogins_Empty() {
	token := s.registerVerified("nologins@example.com")

	resp := s.postJSON(http.MethodGet, "/v1/logins", token, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("User does not own any logins.", errResp.Error)
}

func (s *Suite) TestUpdateLogin_RecomputesDomain() {
	token := s.registerVerified("update@example.com")
	id := s.createLogin(token, loginPayload())

	resp := s.postJSON(http.MethodPut, "/v1/logins/"+id, token, dto.UpdateLoginRequest{
		WebsiteAddress: "https://sub.example.co.uk/login",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var updated struct {
		Message string            `json:"message"`
		Data    dto.LoginResource `json:"data"`
	}
	s.decode(resp, &updated)
	s.Equal("Login was updated.", updated.Message)
	s.Equal("example.co.uk", updated.Data.Domain)
	s.Equal("My Bank", updated.Data.WebsiteName)
}

func (s *Suite) TestUpdateLogin_OwnerOnly() {
	ownerToken := s.registerVerified("updowner@example.com")
	id := s.createLogin(ownerToken, loginPayload())
	otherToken := s.registerVerified("updother@example.com")

	resp := s.postJSON(http.MethodPut, "/v1/logins/"+id, otherToken, dto.UpdateLoginRequest{
		Password: "stolen",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestDeleteLogin() {
	token := s.registerVerified("dellogin@example.com")
	id := s.createLogin(token, loginPayload())

	resp := s.postJSON(http.MethodDelete, "/v1/logins/"+id, token, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var success dto.SuccessResponse
	s.decode(resp, &success)
	s.Equal("Login was deleted successfully.", success.Success)

	after := s.postJSON(http.MethodGet, "/v1/logins/"+id, token, nil)
	defer after.Body.Close()
	s.Equal(http.StatusBadRequest, after.StatusCode)
}
