package domain

import "time"

// Login is a single stored credential record. UserID is set once at creation
// and never changes. Username and Password are held encrypted in the database;
// the repository stores whatever it is given, encryption happens at the
// service boundary.
type Login struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	WebsiteName    string    `json:"website_name" db:"website_name"`
	WebsiteAddress string    `json:"website_address" db:"website_address"`
	Domain         string    `json:"domain" db:"domain"`
	Username       string    `json:"username" db:"username"`
	Password       string    `json:"password" db:"password"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
