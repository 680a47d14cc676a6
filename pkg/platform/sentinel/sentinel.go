package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and cache adapters return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: snapshot or cache entry does not exist
// - ErrVersionConflict: a concurrent submission already wrote this profile version
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("profile version conflict")
)
