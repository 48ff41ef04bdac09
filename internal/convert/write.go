// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/pretty"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/fade-packs/internal/store"
	"github.com/pdiddy/fade-packs/pkg/types"
)

// prettyOptions indents with two spaces, keeps the source key order, and
// never folds arrays onto one line.
var prettyOptions = &pretty.Options{Width: 0, Prefix: "", Indent: "  ", SortKeys: false}

// writePlan is a document with its final location decided.
type writePlan struct {
	doc  document
	name string
	// rel is the file path relative to the pack directory, slash-separated.
	rel string
}

// plan resolves each document's folder path and file name. Names are
// claimed in source order; a name already taken in the same directory
// (compared case-insensitively) gets the document id appended.
func (c *Converter) plan(docs []document, folders map[string]store.Header, res *types.ExtractionResult) []writePlan {
	plans := make([]writePlan, 0, len(docs))
	taken := make(map[string]bool, len(docs))

	for _, d := range docs {
		h := store.DecodeHeader(d.body)
		dir := path.Join(c.folderPath(d.key.Raw, h.Folder, folders, res)...)

		base := c.name(h.Name)
		rel := path.Join(dir, base+".json")
		if taken[strings.ToLower(rel)] {
			first := rel
			suffixed := base + "_" + c.name(d.key.ID)
			rel = path.Join(dir, suffixed+".json")
			for n := 2; taken[strings.ToLower(rel)]; n++ {
				rel = path.Join(dir, suffixed+"_"+strconv.Itoa(n)+".json")
			}
			c.diagnose(res, types.DiagNameCollision, d.key.Raw,
				fmt.Sprintf("%s already written, using %s", first, rel))
		}
		taken[strings.ToLower(rel)] = true

		plans = append(plans, writePlan{doc: d, name: h.NameString(), rel: rel})
	}
	return plans
}

// writeAll writes the planned documents, Workers at a time. A failed write
// is recorded and does not stop the others; only cancellation of ctx
// aborts the loop.
func (c *Converter) writeAll(ctx context.Context, plans []writePlan, res *types.ExtractionResult, w io.Writer) error {
	outDir := c.PackDir()
	errs := make([]error, len(plans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)
	for i, p := range plans {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			errs[i] = writeDocument(filepath.Join(outDir, filepath.FromSlash(p.rel)), p.doc.body)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, p := range plans {
		if err := errs[i]; err != nil {
			res.Failed++
			c.diagnose(res, types.DiagWriteFailed, p.doc.key.Raw, fmt.Sprintf("writing %s: %v", p.rel, err))
			fmt.Fprintf(w, "failed:    %s (%v)\n", p.rel, err)
			continue
		}
		res.Extracted++
		res.Documents = append(res.Documents, types.ExtractedDocument{
			Key:      p.doc.key.Raw,
			Type:     p.doc.key.Type,
			Name:     p.name,
			Path:     p.rel,
			Embedded: p.doc.embedded,
		})
		fmt.Fprintf(w, "extracted: %s\n", p.rel)
	}
	return nil
}

// writeDocument creates the file's directory if needed and writes the body
// as indented JSON.
func writeDocument(file string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return os.WriteFile(file, pretty.PrettyOptions(body, prettyOptions), 0o644)
}

// writeFolders writes every folder record as one object keyed by the
// original folder keys, in source order.
func writeFolders(file string, folders []store.Entry) error {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range folders {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.MarshalNoEscape(f.Key.Raw)
		if err != nil {
			return fmt.Errorf("encoding key %s: %w", f.Key.Raw, err)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(f.Body)
	}
	b.WriteByte('}')
	return writeDocument(file, b.Bytes())
}
