package domain

import "time"

// User is a stored account with credentials. Identity is the view of a User
// handed to the session layer after a successful credential check.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Zip          string    `json:"zip,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity strips credentials and storage fields.
func (u User) Identity() Identity {
	return Identity{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.Role,
		Phone:   u.Phone,
		Address: u.Address,
		City:    u.City,
		State:   u.State,
		Zip:     u.Zip,
	}
}
