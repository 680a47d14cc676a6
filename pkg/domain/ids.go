// Package domain holds shared domain primitives parsed at trust boundaries.
//
// Construct values via the Parse functions; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "dermis/pkg/domain-errors"
)

// UserID identifies the questionnaire subject across profile versions.
type UserID uuid.UUID

// ParseUserID validates and returns a UserID. Empty, malformed, and nil UUIDs
// are rejected so stores and cache keys never see a zero identity.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid user id")
	}
	if u == uuid.Nil {
		return UserID{}, dErrors.New(dErrors.CodeInvalidInput, "user id must not be nil")
	}
	return UserID(u), nil
}

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero value.
func (id UserID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText keeps the canonical UUID form in JSON and persisted snapshots
// instead of uuid.UUID's underlying byte array.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *UserID) UnmarshalText(data []byte) error {
	u, err := uuid.ParseBytes(data)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid user id")
	}
	*id = UserID(u)
	return nil
}

// ProfileVersion is a monotonically increasing snapshot counter per user.
// Version 0 means "no profile yet"; the first stored snapshot is version 1.
type ProfileVersion int

// ParseProfileVersion rejects non-positive versions at boundaries.
func ParseProfileVersion(v int) (ProfileVersion, error) {
	if v < 1 {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "profile version must be >= 1, got %d", v)
	}
	return ProfileVersion(v), nil
}

// Next returns the version a new snapshot should be written under.
func (v ProfileVersion) Next() ProfileVersion {
	if v < 0 {
		return 1
	}
	return v + 1
}
