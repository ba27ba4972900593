package dto

import (
	"time"

	"github.com/jskalc/vault-api/internal/domain"
)

// UserResource is the public representation of a user
type UserResource struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Surname         string  `json:"surname"`
	Email           string  `json:"email"`
	EmailVerifiedAt *string `json:"email_verified_at"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// NewUserResource maps a user entity to its response shape
func NewUserResource(user *domain.User) UserResource {
	resource := UserResource{
		ID:        user.ID,
		Name:      user.Name,
		Surname:   user.Surname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}

	if user.EmailVerifiedAt != nil {
		verifiedAt := user.EmailVerifiedAt.Format(time.RFC3339)
		resource.EmailVerifiedAt = &verifiedAt
	}

	return resource
}

// LoginResource is the public representation of a credential record, with
// username and password already decrypted.
type LoginResource struct {
	ID             string `json:"id"`
	WebsiteName    string `json:"website_name"`
	WebsiteAddress string `json:"website_address"`
	Domain         string `json:"domain"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// NewLoginResource maps a login entity to its response shape
func NewLoginResource(login *domain.Login) LoginResource {
	return LoginResource{
		ID:             login.ID,
		WebsiteName:    login.WebsiteName,
		WebsiteAddress: login.WebsiteAddress,
		Domain:         login.Domain,
		Username:       login.Username,
		Password:       login.Password,
		CreatedAt:      login.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      login.UpdatedAt.Format(time.RFC3339),
	}
}

// LoginPage is a paginated list of credential records
type LoginPage struct {
	Data    []LoginResource `json:"data"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// NewLoginPage maps a page of login entities to the response shape
func NewLoginPage(logins []*domain.Login, total, page, perPage int) LoginPage {
	resources := make([]LoginResource, 0, len(logins))
	for _, login := range logins {
		resources = append(resources, NewLoginResource(login))
	}

	return LoginPage{
		Data:    resources,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}

// SuccessResponse carries a plain success message under the "success" key
type SuccessResponse struct {
	Success string `json:"success"`
}

// DataResponse wraps a payload under the "data" key
type DataResponse struct {
	Data any `json:"data"`
}

// MessageDataResponse pairs a message with a payload
type MessageDataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// TokenResponse is the login success envelope
type TokenResponse struct {
	Success TokenPayload `json:"success"`
}

// TokenPayload carries the issued bearer token
type TokenPayload struct {
	Token string `json:"token"`
}

// ErrorResponse carries a single user-facing error message
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse reports field-level rule violations
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
