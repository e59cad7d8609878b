// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the account that can sign in to the inventory API.
// Users are created on registration and never mutated afterwards.
type User struct {
	ID           int64     // Store-generated identifier.
	Username     string    // Unique, non-empty handle. Used as the token subject.
	Email        string    // Unique login identifier.
	PasswordHash string    // Opaque one-way hash. Never leaves the service layer.
	CreatedAt    time.Time // Timestamp of registration.
}
