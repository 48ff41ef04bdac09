// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Pack names a compendium pack: one category of game content that is stored
// in a single document store and extracted as one unit.
type Pack string

const (
	PackActors     Pack = "actors"
	PackItems      Pack = "items"
	PackMacros     Pack = "macros"
	PackRollTables Pack = "rollTables"
)

// DefaultPack is extracted when no pack is named.
const DefaultPack = PackActors

// Packs returns every known pack in a stable order.
func Packs() []Pack {
	return []Pack{PackActors, PackItems, PackMacros, PackRollTables}
}

// Valid reports whether p is one of the known packs.
func (p Pack) Valid() bool {
	for _, known := range Packs() {
		if p == known {
			return true
		}
	}
	return false
}

// NamingStyle selects how display names become path components.
type NamingStyle string

const (
	// NamingSafe keeps the name's case and characters, replacing only runs of
	// filesystem-unsafe characters with an underscore.
	NamingSafe NamingStyle = "safe"
	// NamingSlug lower-cases and transliterates names into ASCII slugs.
	NamingSlug NamingStyle = "slug"
)
