package domain

import (
	"errors"
	"fmt"
)

// HeaderNotFoundError signals a structural parse failure: the ORGA sheet has
// no recognizable header row, so no extraction is attempted.
type HeaderNotFoundError struct {
	Sheet string
	Err   error
}

func (e HeaderNotFoundError) Error() string {
	if e.Sheet == "" {
		return "header row not found"
	}
	return fmt.Sprintf("header row not found in sheet %q", e.Sheet)
}

func (e HeaderNotFoundError) Unwrap() error { return e.Err }

// TripMismatchError signals that the ORGA file and the client file carry
// different trip numbers. The whole request is rejected before parsing.
type TripMismatchError struct {
	OrgaID   string
	ClientID string
}

func (e TripMismatchError) Error() string {
	return fmt.Sprintf("trip number mismatch: orga=%s client=%s", orDash(e.OrgaID), orDash(e.ClientID))
}

// EmptyRosterError signals a GROUP client file from which no room received
// any traveller name.
type EmptyRosterError struct {
	File string
}

func (e EmptyRosterError) Error() string {
	if e.File == "" {
		return "room roster is empty"
	}
	return fmt.Sprintf("room roster is empty in %s", e.File)
}

// NoServicesFoundError signals a structurally valid ORGA sheet that yielded
// zero service fragments. Kept distinct from a mismatch or a missing header so
// the caller can tell the operator the file is simply empty.
type NoServicesFoundError struct {
	Sheet string
}

func (e NoServicesFoundError) Error() string {
	if e.Sheet == "" {
		return "no services found"
	}
	return fmt.Sprintf("no services found in sheet %q", e.Sheet)
}

// ValidationError covers request-level bad input (missing files, unreadable
// traveller names, unknown mode).
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// InternalError wraps unexpected failures (I/O, rendering).
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsHeaderNotFound(err error) bool {
	var target HeaderNotFoundError
	return errors.As(err, &target)
}

func IsTripMismatch(err error) bool {
	var target TripMismatchError
	return errors.As(err, &target)
}

func IsEmptyRoster(err error) bool {
	var target EmptyRosterError
	return errors.As(err, &target)
}

func IsNoServices(err error) bool {
	var target NoServicesFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func orDash(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
