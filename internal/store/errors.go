// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "errors"

// Sentinel errors returned by Load. Callers use errors.Is to tell a missing
// source from a malformed one.
var (
	ErrNotFound = errors.New("document store not found")
	ErrParse    = errors.New("document store is not a valid JSON object")
	ErrRead     = errors.New("reading document store")
)
