package fsedit

import "github.com/edgeforge/wictool/internal/common/executil"

// E2toolsEditor edits ext scratch files with e2mkdir and e2cp. e2cp is known
// to exit zero even when it fails; the engine verifies copy-out results by
// checking the destination.
type E2toolsEditor struct{}

// MakeDir creates the directory and any missing parents; existing
// directories are not an error.
func (E2toolsEditor) MakeDir(partFile, dir string) error {
	return executil.Run("e2mkdir", partFile+":"+dir)
}

func (E2toolsEditor) CopyIn(partFile, hostFile, imagePath string) error {
	return executil.Run("e2cp", hostFile, partFile+":"+imagePath)
}

func (E2toolsEditor) CopyOut(partFile, imagePath, hostFile string) error {
	return executil.Run("e2cp", partFile+":"+imagePath, hostFile)
}
