package model

import "time"

// User represents a registered storefront customer.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"firstName" gorm:"size:255;not null"`
	LastName     *string   `json:"lastName,omitempty" gorm:"size:255"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// PublicUser is the subset of User safe to return to any caller.
type PublicUser struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName,omitempty"`
}

// Public strips the user record down to its public view.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
