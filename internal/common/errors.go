// Package common defines shared constants, random helpers and sentinel
// errors used across FoodFlow components. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrorUnauthorized = errors.New("invalid username or password")

	// Signup / password-reset validation errors.
	ErrUsernameTaken = errors.New("username already taken")
	ErrWeakPassword  = errors.New("password must be at least 8 characters with a capital letter and a number")
	ErrValidation    = errors.New("validation error")

	// Recovery errors.
	ErrNoSecurityQuestion = errors.New("no security question on record")
	ErrWrongAnswer        = errors.New("security answer does not match")

	// Session errors.
	ErrNoActiveUser     = errors.New("no active user session")
	ErrNoActiveBusiness = errors.New("no active business session")
)
