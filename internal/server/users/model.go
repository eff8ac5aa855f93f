package users

import (
	"time"

	"fintrack/internal/models"
)

// User is the server-side account record, including the credential hash
// that must never leave this layer.
type User struct {
	ID            string
	Email         string
	Name          string
	Age           int
	Profession    string
	City          string
	MonthlyIncome float64
	IsActive      bool
	PasswordHash  []byte
	CreatedAt     time.Time
	LastLogin     time.Time // zero value means never logged in
}

// Snapshot converts the record into the wire-level user, dropping the
// credential hash and formatting timestamps as RFC 3339 strings.
func (u *User) Snapshot() models.User {
	m := models.User{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Age:           u.Age,
		Profession:    u.Profession,
		City:          u.City,
		MonthlyIncome: u.MonthlyIncome,
		IsActive:      u.IsActive,
	}
	if !u.CreatedAt.IsZero() {
		m.AccountCreatedDate = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !u.LastLogin.IsZero() {
		m.LastLogin = u.LastLogin.UTC().Format(time.RFC3339)
	}
	return m
}
