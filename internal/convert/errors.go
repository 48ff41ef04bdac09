// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"

	"github.com/pdiddy/fade-packs/internal/store"
)

// Sentinel errors for the failures that abort an extraction. Everything else
// is reported as a diagnostic on the ExtractionResult.
var (
	ErrInvalidConfig = errors.New("invalid extraction config")
	ErrNotFound      = store.ErrNotFound
	ErrParse         = store.ErrParse
	ErrIO            = errors.New("extraction I/O failed")
)
