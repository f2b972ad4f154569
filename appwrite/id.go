package appwrite

import "github.com/google/uuid"

// UniqueID generates a fresh identifier for a new account or document.
func UniqueID() string {
	return uuid.New().String()
}
