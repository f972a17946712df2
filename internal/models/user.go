package models

import "time"

type Role string

const (
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

type User struct {
	ID        int
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsOwner   bool
	CreatedAt time.Time
}

func (u User) Role() Role {
	if u.IsOwner {
		return RoleOwner
	}
	return RoleUser
}

type Customer struct {
	ID                int
	UserID            int
	DateOfBirth       time.Time
	LicenceSince      time.Time
	LicenceExpiryDate time.Time
	Address           string
	City              string
	Country           string
	Citizenship       string
	PhoneNumber       string
}
