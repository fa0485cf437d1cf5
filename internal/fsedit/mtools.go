// Package fsedit binds the FAT and ext partition editors. FAT edits go
// through mtools when installed, with a pure Go fallback; ext edits always
// delegate to e2tools.
package fsedit

import "github.com/edgeforge/wictool/internal/common/executil"

// MtoolsEditor edits FAT scratch files with mmd and mcopy.
type MtoolsEditor struct{}

// MakeDir creates a single directory. mmd has no create-if-missing mode and
// fails when the directory exists; the caller decides whether that matters.
func (MtoolsEditor) MakeDir(partFile, dir string) error {
	return executil.Run("mmd", "-D", "sS", "-i", partFile, dir)
}

func (MtoolsEditor) CopyIn(partFile, hostFile, imagePath string) error {
	return executil.Run("mcopy", "-o", "-i", partFile, hostFile, "::"+imagePath)
}

func (MtoolsEditor) CopyOut(partFile, imagePath, hostDir string) error {
	return executil.Run("mcopy", "-o", "-i", partFile, "::"+imagePath, hostDir)
}
