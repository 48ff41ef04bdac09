// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Key
	}{
		{
			name: "folder",
			raw:  "!folders!F1",
			want: Key{Raw: "!folders!F1", Kind: KindFolder, Type: "folders", ID: "F1"},
		},
		{
			name: "content",
			raw:  "!actors!A1",
			want: Key{Raw: "!actors!A1", Kind: KindContent, Type: "actors", ID: "A1"},
		},
		{
			name: "content id containing a dot stays content",
			raw:  "!actors!A1.x",
			want: Key{Raw: "!actors!A1.x", Kind: KindContent, Type: "actors", ID: "A1.x"},
		},
		{
			name: "embedded",
			raw:  "!actor.item!P1.C1",
			want: Key{Raw: "!actor.item!P1.C1", Kind: KindEmbedded, Type: "actor", ChildType: "item", ID: "P1", ChildID: "C1"},
		},
		{
			name: "embedded splits on the first dot only",
			raw:  "!actor.item.effect!P1.C1.E1",
			want: Key{Raw: "!actor.item.effect!P1.C1.E1", Kind: KindEmbedded, Type: "actor", ChildType: "item.effect", ID: "P1", ChildID: "C1.E1"},
		},
		{
			name: "embedded without child id",
			raw:  "!actor.item!P1",
			want: Key{Raw: "!actor.item!P1", Kind: KindMalformed},
		},
		{
			name: "embedded with empty child id",
			raw:  "!actor.item!P1.",
			want: Key{Raw: "!actor.item!P1.", Kind: KindMalformed},
		},
		{
			name: "embedded with empty parent id",
			raw:  "!actor.item!.C1",
			want: Key{Raw: "!actor.item!.C1", Kind: KindMalformed},
		},
		{
			name: "no leading bang",
			raw:  "actors!A1",
			want: Key{Raw: "actors!A1", Kind: KindMalformed},
		},
		{
			name: "no id section",
			raw:  "!actors!",
			want: Key{Raw: "!actors!", Kind: KindMalformed},
		},
		{
			name: "no separator",
			raw:  "!actors",
			want: Key{Raw: "!actors", Kind: KindMalformed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKey(tt.raw))
		})
	}
}

func TestKey_ParentKey(t *testing.T) {
	assert.Equal(t, "!actor!P1", ParseKey("!actor.item!P1.C1").ParentKey())
	assert.Empty(t, ParseKey("!actor!P1").ParentKey())
	assert.Equal(t, "!folders!F1", FolderKey("F1"))
}

func TestParse_PreservesSourceOrder(t *testing.T) {
	data := []byte(`{
		"!items!Z": {"name": "Zeta"},
		"!folders!F1": {"name": "Weapons", "folder": null},
		"!items!A": {"name": "Alpha", "folder": "F1"}
	}`)

	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "!items!Z", entries[0].Key.Raw)
	assert.Equal(t, KindFolder, entries[1].Key.Kind)
	assert.Equal(t, "!items!A", entries[2].Key.Raw)
	assert.JSONEq(t, `{"name": "Alpha", "folder": "F1"}`, string(entries[2].Body))
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	entries, err := Parse([]byte(`{"!items!A": {"name": "old"}, "!items!B": {}, "!items!A": {"name": "new"}}`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "!items!A", entries[0].Key.Raw)
	assert.JSONEq(t, `{"name": "new"}`, string(entries[0].Body))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "truncated", data: `{"!items!A": {"name": "x"`},
		{name: "array", data: `[{"name": "x"}]`},
		{name: "scalar", data: `"text"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParse_StripsBOM(t *testing.T) {
	entries, err := Parse([]byte("\xef\xbb\xbf{\"!items!A\": {}}"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.db"))
	assert.ErrorIs(t, err, ErrNotFound)

	path := filepath.Join(dir, "items.db")
	require.NoError(t, os.WriteFile(path, []byte(`{"!items!A": {"name": "Sword"}}`), 0o644))
	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KindContent, entries[0].Key.Kind)
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantName   any
		wantFolder string
	}{
		{name: "string folder", body: `{"name": "Goblin", "folder": "F1"}`, wantName: "Goblin", wantFolder: "F1"},
		{name: "null folder", body: `{"name": "Goblin", "folder": null}`, wantName: "Goblin"},
		{name: "missing folder", body: `{"name": "Goblin"}`, wantName: "Goblin"},
		{name: "empty folder", body: `{"name": "Goblin", "folder": ""}`, wantName: "Goblin"},
		{name: "false folder", body: `{"name": "Goblin", "folder": false}`, wantName: "Goblin"},
		{name: "numeric folder", body: `{"name": "Goblin", "folder": 42}`, wantName: "Goblin", wantFolder: "42"},
		{name: "numeric name", body: `{"name": 7}`, wantName: float64(7)},
		{name: "not an object", body: `"Goblin"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := DecodeHeader([]byte(tt.body))
			assert.Equal(t, tt.wantName, h.Name)
			assert.Equal(t, tt.wantFolder, h.Folder)
		})
	}
}

func TestHeader_NameString(t *testing.T) {
	assert.Equal(t, "Goblin", Header{Name: "Goblin"}.NameString())
	assert.Empty(t, Header{Name: 3.0}.NameString())
	assert.Empty(t, Header{}.NameString())
}
