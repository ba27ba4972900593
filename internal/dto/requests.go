package dto

// RegisterRequest represents a registration request. The confirmation field
// must repeat the password exactly.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,displayname"`
	Surname   string `json:"surname" binding:"required,displayname"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,userpassword"`
	CPassword string `json:"c_password" binding:"required,eqfield=Password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents a profile update. Empty fields are left
// untouched. Email is deliberately absent: address changes only happen
// through the verification flow.
type UpdateUserRequest struct {
	Name      string `json:"name" binding:"omitempty,displayname"`
	Surname   string `json:"surname" binding:"omitempty,displayname"`
	Password  string `json:"password" binding:"omitempty,userpassword"`
	CPassword string `json:"c_password" binding:"eqfield=Password"`
}

// CreateLoginRequest represents a request to store a credential record. Any
// owner or user id supplied by the caller is not part of this shape and is
// silently dropped; ownership always comes from the authenticated principal.
type CreateLoginRequest struct {
	WebsiteName    string `json:"website_name" binding:"required,max=30"`
	WebsiteAddress string `json:"website_address" binding:"required,max=255,url"`
	Username       string `json:"username" binding:"required,max=45"`
	Password       string `json:"password" binding:"required,max=45"`
}

// UpdateLoginRequest represents a partial credential record update
type UpdateLoginRequest struct {
	WebsiteName    string `json:"website_name" binding:"omitempty,max=30"`
	WebsiteAddress string `json:"website_address" binding:"omitempty,max=255,url"`
	Username       string `json:"username" binding:"omitempty,max=45"`
	Password       string `json:"password" binding:"omitempty,max=45"`
}

// PasswordCreateRequest starts the password reset flow. CallbackURL, when
// present, is embedded in the reset email as an opaque link target.
type PasswordCreateRequest struct {
	Email       string `json:"email" binding:"required,email"`
	CallbackURL string `json:"callback_url" binding:"omitempty,url"`
}

// PasswordResetRequest completes the password reset flow
type PasswordResetRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,userpassword"`
	CPassword string `json:"c_password" binding:"required,eqfield=Password"`
	Token     string `json:"token" binding:"required"`
}

// EmailUpdateRequest starts the email change verification flow
type EmailUpdateRequest struct {
	EmailUpdate string `json:"email_update" binding:"required,email"`
}
