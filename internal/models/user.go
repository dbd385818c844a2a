package models

import "strings"

// User is the nameplate data returned by the auth service on login.
type User struct {
	ID        string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName joins first and last name, falling back to the email.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Seller is a storefront seller shown on the landing page.
type Seller struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}
