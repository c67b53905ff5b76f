package models

import (
	"strings"
	"time"
)

// User is an account. Password holds a bcrypt hash and is never serialized.
type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:254;not null;default:''" json:"email"`
	Password     string     `gorm:"size:128;not null" json:"-"`
	FirstName    string     `gorm:"size:60;not null;default:''" json:"first_name"`
	LastName     string     `gorm:"size:60;not null;default:''" json:"last_name"`
	Bio          string     `gorm:"type:text;not null;default:''" json:"bio"`
	IsStaff      bool       `gorm:"not null;default:false" json:"is_staff"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	DateJoined   time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin    *time.Time `json:"last_login"`
	LastActivity *time.Time `json:"last_activity"`
}

// UserOrdering is the default listing order.
const UserOrdering = "first_name ASC, last_name ASC, id ASC"

// FullName joins first and last name, trimming when either is blank.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) String() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}
