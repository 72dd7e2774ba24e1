// Package repository contains the data access layer: one repo per table,
// parameterized SQL only. Sentinel errors let handlers map failure modes to
// status codes; anything else is a store failure and surfaces as HTTP 500
// with the raw driver message.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email is already
// registered. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already registered")

// ErrUserNotFound is returned when an operation targets a user id that does
// not exist. Handlers translate this into HTTP 404.
var ErrUserNotFound = errors.New("user not found")

// ErrNoFields is returned by UserRepo.Update when the patch carries no
// updatable fields. Handlers short-circuit to a no-op response before calling
// Update, so seeing this error means a caller skipped that check.
var ErrNoFields = errors.New("no fields to update")
