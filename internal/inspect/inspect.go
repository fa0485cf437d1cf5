package inspect

import (
	"os/exec"

	"github.com/edgeforge/wictool/internal/partition"
	"go.uber.org/zap"
)

// AutoInspector prefers the go-diskfs reader and retries with fdisk when the
// table cannot be read in-process and fdisk is installed.
type AutoInspector struct {
	diskfs DiskfsInspector
	fdisk  FdiskInspector
	log    *zap.SugaredLogger
}

func NewAutoInspector(log *zap.SugaredLogger) AutoInspector {
	return AutoInspector{log: log}
}

func (a AutoInspector) DisklabelType(image string) (string, error) {
	label, err := a.diskfs.DisklabelType(image)
	if err == nil {
		return label, nil
	}
	if !fdiskAvailable() {
		return "", err
	}
	a.log.Debugw("falling back to fdisk for disklabel type", "image", image, "error", err)
	return a.fdisk.DisklabelType(image)
}

func (a AutoInspector) List(image string) ([]partition.LayoutRow, error) {
	rows, err := a.diskfs.List(image)
	if err == nil {
		return rows, nil
	}
	if !fdiskAvailable() {
		return nil, err
	}
	a.log.Debugw("falling back to fdisk for partition listing", "image", image, "error", err)
	return a.fdisk.List(image)
}

func fdiskAvailable() bool {
	_, err := exec.LookPath("fdisk")
	return err == nil
}
