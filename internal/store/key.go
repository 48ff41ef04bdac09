// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "strings"

// Kind is the variant a store key classifies into.
type Kind int

const (
	// KindMalformed keys do not match !<type>!<id>, or are embedded keys
	// missing an id half. Their records are dropped.
	KindMalformed Kind = iota
	// KindFolder keys start with !folders!.
	KindFolder
	// KindContent keys are !<type>!<id> with no subtype.
	KindContent
	// KindEmbedded keys are !<parentType>.<childType>!<parentId>.<childId>.
	KindEmbedded
)

// FolderPrefix starts every folder key.
const FolderPrefix = "!folders!"

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindContent:
		return "content"
	case KindEmbedded:
		return "embedded"
	default:
		return "malformed"
	}
}

// Key is a classified store key. Which fields are set depends on Kind:
// folders and content documents carry Type and ID, embedded documents carry
// all four parts, malformed keys carry only Raw.
type Key struct {
	Raw       string
	Kind      Kind
	Type      string
	ChildType string
	ID        string
	ChildID   string
}

// ParseKey classifies a raw key. It is the only place key patterns are
// inspected; the rest of the pipeline dispatches on Kind.
func ParseKey(raw string) Key {
	k := Key{Raw: raw, Kind: KindMalformed}

	if id, ok := strings.CutPrefix(raw, FolderPrefix); ok {
		k.Kind = KindFolder
		k.Type = "folders"
		k.ID = id
		return k
	}

	rest, ok := strings.CutPrefix(raw, "!")
	if !ok {
		return k
	}
	typeSection, idSection, ok := strings.Cut(rest, "!")
	if !ok || typeSection == "" || idSection == "" {
		return k
	}

	parentType, childType, embedded := strings.Cut(typeSection, ".")
	if !embedded {
		k.Kind = KindContent
		k.Type = typeSection
		k.ID = idSection
		return k
	}

	parentID, childID, _ := strings.Cut(idSection, ".")
	if parentID == "" || childID == "" {
		return k
	}
	k.Kind = KindEmbedded
	k.Type = parentType
	k.ChildType = childType
	k.ID = parentID
	k.ChildID = childID
	return k
}

// ParentKey returns the key of the content document that owns an embedded
// document, or "" for any other kind.
func (k Key) ParentKey() string {
	if k.Kind != KindEmbedded {
		return ""
	}
	return "!" + k.Type + "!" + k.ID
}

// FolderKey returns the store key of the folder with the given id.
func FolderKey(id string) string {
	return FolderPrefix + id
}
