package models

import "time"

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleBarber   = "barber"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`

	// Role is fixed at registration; profile updates never touch it.
	Role  string `gorm:"size:10;not null" json:"role"`
	Phone string `gorm:"size:15;uniqueIndex;not null" json:"phone"`

	ProfilePicture string `gorm:"size:500" json:"profile_picture"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
