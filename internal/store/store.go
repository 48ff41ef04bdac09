// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store loads a single-file key/value document store and classifies
// its keys into folders, content documents, and embedded documents.
//
// The store is one JSON object whose keys follow
// !<type>[.<subtype>]!<id>[.<childId>] and whose values are document bodies.
// Bodies are kept as raw JSON so their field order and number formatting
// survive extraction unchanged.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Entry is one record of the store in source order.
type Entry struct {
	Key  Key
	Body []byte
}

// Load reads and parses the whole store at path. Entries are returned in the
// order their keys appear in the file; a key repeated later in the file
// replaces the earlier body but keeps the earlier position.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w %s: %v", ErrRead, path, err)
	}
	return Parse(data)
}

// Parse classifies the entries of an in-memory store. See Load.
func Parse(data []byte) ([]Entry, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrParse)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top-level value is %s", ErrParse, root.Type)
	}

	var entries []Entry
	seen := make(map[string]int)
	root.ForEach(func(k, v gjson.Result) bool {
		raw := k.String()
		body := []byte(v.Raw)
		if i, ok := seen[raw]; ok {
			entries[i].Body = body
			return true
		}
		seen[raw] = len(entries)
		entries = append(entries, Entry{Key: ParseKey(raw), Body: body})
		return true
	})
	return entries, nil
}

// Header holds the fields of a body the extractor needs.
type Header struct {
	// Name is the raw "name" value; it may be any JSON type.
	Name any
	// Folder is the parent folder id, or "" for the root.
	Folder string
}

// NameString returns Name when it is a string, or "".
func (h Header) NameString() string {
	s, _ := h.Name.(string)
	return s
}

// DecodeHeader reads name and folder from a body. Bodies that are not
// objects yield an empty header.
func DecodeHeader(body []byte) Header {
	var raw struct {
		Name   any `json:"name"`
		Folder any `json:"folder"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Header{}
	}
	return Header{Name: raw.Name, Folder: folderID(raw.Folder)}
}

// folderID turns a folder reference into an id. Null, false, zero, and the
// empty string all mean the root.
func folderID(v any) string {
	switch f := v.(type) {
	case string:
		return f
	case float64:
		if f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case bool:
		if f {
			return "true"
		}
	}
	return ""
}
