package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every error returned by a service either unwraps to one
// of these, is a *ValidationError, or is an unexpected internal failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrUserNotFound       = categorized(ErrNotFound, "user not found")
	ErrBookNotFound       = categorized(ErrNotFound, "book not found")
	ErrBorrowNotFound     = categorized(ErrNotFound, "borrow record not found or book already returned")
	ErrNoUsersFound       = categorized(ErrNotFound, "no users found")
	ErrNoBooksFound       = categorized(ErrNotFound, "no books found")
	ErrNoBorrowsFound     = categorized(ErrNotFound, "no borrow records found")
	ErrEmailTaken         = categorized(ErrConflict, "user already exists with this email")
	ErrBookExists         = categorized(ErrConflict, "this book is already added")
	ErrInvalidCredentials = categorized(ErrUnauthorized, "invalid email or password")
)

type categoryError struct {
	category error
	msg      string
}

func categorized(category error, msg string) error {
	return &categoryError{category: category, msg: msg}
}

func (e *categoryError) Error() string { return e.msg }
func (e *categoryError) Unwrap() error { return e.category }

// FieldError describes one violated input rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationError carries every rule an input violated, not just the first.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// violations accumulates field errors.
type violations struct {
	fields []FieldError
}

func (v *violations) add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *violations) check(ok bool, field, message string) {
	if !ok {
		v.add(field, message)
	}
}

// err returns nil when no rule was violated.
func (v *violations) err(message string) error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Message: message, Fields: v.fields}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
