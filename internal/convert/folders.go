// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/pdiddy/fade-packs/internal/store"
	"github.com/pdiddy/fade-packs/pkg/types"
)

// folderPath walks from folderID up to the root and returns the sanitized
// folder names from the root down. The walk stops early, keeping what it
// has, when a folder record is missing or a folder is visited twice.
func (c *Converter) folderPath(key, folderID string, folders map[string]store.Header, res *types.ExtractionResult) []string {
	var segments []string
	visited := make(map[string]bool)

	for id := folderID; id != ""; {
		fk := store.FolderKey(id)
		f, ok := folders[fk]
		if !ok {
			c.diagnose(res, types.DiagMissingFolder, key, fmt.Sprintf("folder %s not found", fk))
			break
		}
		if visited[fk] {
			c.diagnose(res, types.DiagFolderCycle, key, fmt.Sprintf("folder %s is its own ancestor", fk))
			break
		}
		visited[fk] = true
		segments = append([]string{c.name(f.Name)}, segments...)
		id = f.Folder
	}
	return segments
}
