//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract rebuilds the JSON source trees of every pack found in packs/.
func Extract() error {
	mg.Deps(Build)
	fmt.Println("[extract] Rebuilding src/packs from packs/*.db")
	return sh.RunV(binPath(), "extract", "--all", "--report", "src/packs/_report.yaml")
}

// ExtractPack rebuilds the JSON source tree of one pack.
func ExtractPack(pack string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "extract", "--pack", pack)
}
