// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize turns document and folder names into path components that
// are safe on every common filesystem.
package sanitize

import (
	"regexp"
	"strings"

	goslug "github.com/gosimple/slug"

	"github.com/pdiddy/fade-packs/pkg/types"
)

// Fallback is used for names that are missing, not strings, or empty after
// sanitizing.
const Fallback = "unnamed"

var (
	unsafeRun     = regexp.MustCompile(`[<>:"|?*\\/&\s\v\p{Z}\x{0085}\x{FEFF}]+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// Name replaces every run of < > : " | ? * \ / & and Unicode whitespace with
// a single underscore, collapses repeated underscores, and trims underscores from both
// ends. Name(Name(x)) == Name(x).
func Name(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return Fallback
	}
	s = unsafeRun.ReplaceAllString(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	return component(strings.Trim(s, "_"))
}

// Slug returns a lower-case ASCII slug of the name.
func Slug(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return Fallback
	}
	return component(goslug.Make(s))
}

// For returns the naming function for a style; unknown styles use Name.
func For(style types.NamingStyle) func(any) string {
	if style == types.NamingSlug {
		return Slug
	}
	return Name
}

// component keeps a result from being empty or a relative directory
// reference, which would escape the folder it is joined to.
func component(s string) string {
	if s == "" || s == "." || s == ".." {
		return Fallback
	}
	return s
}
