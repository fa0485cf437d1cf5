package fsedit

import (
	"os/exec"

	"github.com/edgeforge/wictool/internal/partition"
	"go.uber.org/zap"
)

// NewFatEditor picks the mtools-backed editor when mcopy is in PATH and the
// in-process go-diskfs editor otherwise.
func NewFatEditor(log *zap.SugaredLogger) partition.FatEditor {
	if _, err := exec.LookPath("mcopy"); err == nil {
		return MtoolsEditor{}
	}
	log.Debugw("mtools not found, using built-in FAT editor")
	return DiskfsFatEditor{}
}

// NewExtEditor returns the e2tools-backed ext editor. There is no in-process
// fallback for writing ext filesystems.
func NewExtEditor() partition.ExtEditor {
	return E2toolsEditor{}
}
