package model

import (
	"strings"
	"time"
	"unicode"
)

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleAccountant
}

type User struct {
	ID           string   `gorm:"primaryKey;size:36"`
	Username     string   `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	FirstName    string   `gorm:"size:150"`
	LastName     string   `gorm:"size:150"`
	Role         UserRole `gorm:"size:20;not null;default:ACCOUNTANT"`
	IsActive     bool     `gorm:"not null;default:true"`
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// DisplayName falls back to the username when no name was recorded.
func (u User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

// SetName splits a display name on the first run of whitespace.
func (u *User) SetName(name string) {
	name = strings.TrimSpace(name)
	u.FirstName, u.LastName = name, ""
	if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
		u.FirstName = name[:i]
		u.LastName = strings.TrimSpace(name[i:])
	}
}

// RevokedToken records a refresh token id that has already been rotated.
type RevokedToken struct {
	JTI       string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"size:36;index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
