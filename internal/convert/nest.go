// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/pdiddy/fade-packs/internal/store"
	"github.com/pdiddy/fade-packs/pkg/types"
)

// embeddedField holds the nested child bodies in a parent document.
const embeddedField = "embedded"

// partitioned is the store split by key kind, each list in source order.
type partitioned struct {
	folders  []store.Entry
	contents []store.Entry
	// children maps a parent key to its embedded entries.
	children map[string][]store.Entry
	// parents lists the keys of children in first-seen order.
	parents []string
}

// document is a content document ready to be placed and written.
type document struct {
	key      store.Key
	body     []byte
	embedded int
}

func (c *Converter) partition(entries []store.Entry, res *types.ExtractionResult) *partitioned {
	p := &partitioned{children: make(map[string][]store.Entry)}
	for _, e := range entries {
		switch e.Key.Kind {
		case store.KindFolder:
			p.folders = append(p.folders, e)
		case store.KindContent:
			p.contents = append(p.contents, e)
		case store.KindEmbedded:
			parent := e.Key.ParentKey()
			if _, ok := p.children[parent]; !ok {
				p.parents = append(p.parents, parent)
			}
			p.children[parent] = append(p.children[parent], e)
		default:
			c.diagnose(res, types.DiagMalformedKey, e.Key.Raw, "key does not match !<type>!<id>")
		}
	}
	return p
}

// folderIndex maps folder keys to their decoded headers.
func (p *partitioned) folderIndex() map[string]store.Header {
	idx := make(map[string]store.Header, len(p.folders))
	for _, f := range p.folders {
		idx[f.Key.Raw] = store.DecodeHeader(f.Body)
	}
	return idx
}

// nest returns the content documents with their embedded children attached.
// Children whose parent is not a content document are dropped.
func (c *Converter) nest(p *partitioned, res *types.ExtractionResult) []document {
	docs := make([]document, len(p.contents))
	index := make(map[string]int, len(p.contents))
	for i, e := range p.contents {
		docs[i] = document{key: e.Key, body: e.Body}
		index[e.Key.Raw] = i
	}

	for _, parent := range p.parents {
		children := p.children[parent]
		i, ok := index[parent]
		if !ok {
			for _, ch := range children {
				c.diagnose(res, types.DiagOrphanedEmbedded, ch.Key.Raw,
					fmt.Sprintf("parent %s not found", parent))
			}
			continue
		}

		body, err := attachEmbedded(docs[i].body, children)
		if err != nil {
			for _, ch := range children {
				c.diagnose(res, types.DiagOrphanedEmbedded, ch.Key.Raw,
					fmt.Sprintf("cannot nest into %s: %v", parent, err))
			}
			continue
		}
		docs[i].body = body
		docs[i].embedded = len(children)
	}
	return docs
}

// attachEmbedded returns a copy of parent with the child bodies set as its
// embedded array. The parent slice is not modified.
func attachEmbedded(parent []byte, children []store.Entry) ([]byte, error) {
	if !gjson.ParseBytes(parent).IsObject() {
		return nil, fmt.Errorf("parent body is not an object")
	}

	var arr bytes.Buffer
	arr.WriteByte('[')
	for i, ch := range children {
		if i > 0 {
			arr.WriteByte(',')
		}
		arr.Write(ch.Body)
	}
	arr.WriteByte(']')

	return sjson.SetRawBytes(bytes.Clone(parent), embeddedField, arr.Bytes())
}
