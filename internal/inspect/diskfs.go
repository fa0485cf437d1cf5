// Package inspect provides the partition-layout inspector bindings: a pure
// Go reader built on go-diskfs and an fdisk-based fallback.
package inspect

import (
	"fmt"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/edgeforge/wictool/internal/partition"
)

// DiskfsInspector reads GPT and MBR partition tables with go-diskfs,
// without delegating to external tools.
type DiskfsInspector struct{}

// DisklabelType reports "gpt" or "dos". go-diskfs calls the legacy format
// "mbr"; fdisk and the partition-number table call it "dos".
func (DiskfsInspector) DisklabelType(image string) (string, error) {
	d, err := diskfs.Open(image, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return "", fmt.Errorf("open image %s: %w", image, err)
	}
	table, err := d.GetPartitionTable()
	if err != nil {
		return "", fmt.Errorf("read partition table of %s: %w", image, err)
	}

	switch table.Type() {
	case "gpt":
		return "gpt", nil
	case "mbr":
		return "dos", nil
	}
	return "", fmt.Errorf("%w: disklabel %q", partition.ErrFormat, table.Type())
}

// List returns one row per populated partition entry, in table order, with
// start and end expressed in 512-byte sectors.
func (DiskfsInspector) List(image string) ([]partition.LayoutRow, error) {
	d, err := diskfs.Open(image, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", image, err)
	}
	table, err := d.GetPartitionTable()
	if err != nil {
		return nil, fmt.Errorf("read partition table of %s: %w", image, err)
	}

	sectorSize := uint64(d.LogicalBlocksize)
	if sectorSize == 0 {
		sectorSize = 512
	}

	var rows []partition.LayoutRow
	for i, p := range table.GetPartitions() {
		if p.GetSize() <= 0 {
			// MBR tables carry empty primary slots.
			continue
		}
		start := uint64(p.GetStart()) / sectorSize
		end := start + uint64(p.GetSize())/sectorSize - 1
		rows = append(rows, partition.LayoutRow{
			Device: fmt.Sprintf("%s%d", image, i+1),
			Start:  start,
			End:    end,
		})
	}
	return rows, nil
}
