// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/fade-packs/pkg/types"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "plain", in: "Goblin", want: "Goblin"},
		{name: "spaces", in: "Goblin Chief", want: "Goblin_Chief"},
		{name: "run of unsafe characters", in: `a <>:"|?*\/ b`, want: "a_b"},
		{name: "ampersand", in: "Salt & Pepper", want: "Salt_Pepper"},
		{name: "existing underscores collapse", in: "a__ _b", want: "a_b"},
		{name: "trims underscores", in: "  _Goblin_  ", want: "Goblin"},
		{name: "tabs and newlines", in: "a\tb\nc", want: "a_b_c"},
		{name: "vertical tab", in: "a\vb", want: "a_b"},
		{name: "no-break space", in: "a\u00a0b", want: "a_b"},
		{name: "em space", in: "a\u2003b", want: "a_b"},
		{name: "ideographic space", in: "a\u3000b", want: "a_b"},
		{name: "byte order mark", in: "a\ufeffb", want: "a_b"},
		{name: "line separator", in: "a\u2028b", want: "a_b"},
		{name: "next line", in: "a\u0085b", want: "a_b"},
		{name: "mixed unicode spaces", in: "\u00a0Goblin\u2003 \u3000Chief\u00a0", want: "Goblin_Chief"},
		{name: "keeps case and punctuation", in: "Potion (Greater)!", want: "Potion_(Greater)!"},
		{name: "keeps unicode", in: "Épée longue", want: "Épée_longue"},
		{name: "empty", in: "", want: Fallback},
		{name: "nil", in: nil, want: Fallback},
		{name: "number", in: 3.0, want: Fallback},
		{name: "only unsafe characters", in: "???", want: Fallback},
		{name: "dot", in: ".", want: Fallback},
		{name: "dot dot", in: "..", want: Fallback},
		{name: "path traversal", in: "../etc", want: ".._etc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestName_Idempotent(t *testing.T) {
	inputs := []string{
		"", "Goblin", " a  b ", "__x__", `<>:"|?*\/&`, "Salt & Pepper",
		"..", "a/b/c", "_ _ _", "tab\there", "Épée longue", "unnamed",
		"a\vb", "a\u00a0b", "\u2003x\u3000", "a\ufeff\u2028b", "a\u0085_b",
	}
	for _, in := range inputs {
		once := Name(in)
		assert.Equal(t, once, Name(once), "input %q", in)
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "goblin-chief", Slug("Goblin Chief"))
	assert.Equal(t, "epee-longue", Slug("Épée longue"))
	assert.Equal(t, Fallback, Slug(""))
	assert.Equal(t, Fallback, Slug(nil))
	assert.Equal(t, Fallback, Slug("???"))
}

func TestFor(t *testing.T) {
	assert.Equal(t, "Goblin_Chief", For(types.NamingSafe)("Goblin Chief"))
	assert.Equal(t, "Goblin_Chief", For("")("Goblin Chief"))
	assert.Equal(t, "goblin-chief", For(types.NamingSlug)("Goblin Chief"))
}
