package inspect

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/edgeforge/wictool/internal/common/executil"
	"github.com/edgeforge/wictool/internal/partition"
)

// FdiskInspector reads the partition layout by delegating to fdisk,
// matching the listing the number/range tables were derived from.
type FdiskInspector struct{}

// DisklabelType parses the "Disklabel type:" line of `fdisk -l`.
func (FdiskInspector) DisklabelType(image string) (string, error) {
	out, err := executil.RunPipeline(exec.Command("fdisk", "-l", image))
	if err != nil {
		return "", err
	}
	return parseDisklabelType(out, image)
}

func parseDisklabelType(out, image string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Disklabel type:") {
			fields := strings.Fields(line)
			return fields[len(fields)-1], nil
		}
	}
	return "", fmt.Errorf("%w: no disklabel type in fdisk output for %s", partition.ErrFormat, image)
}

// List parses the Device/Start/End columns of `fdisk -l`. Partition rows are
// recognized by their device name, which fdisk prefixes with the image path.
func (FdiskInspector) List(image string) ([]partition.LayoutRow, error) {
	out, err := executil.RunPipeline(exec.Command("fdisk", "-l", "-o", "Device,Start,End", image))
	if err != nil {
		return nil, err
	}
	return parseFdiskRows(out, image)
}

func parseFdiskRows(out, image string) ([]partition.LayoutRow, error) {
	var rows []partition.LayoutRow
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, image) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: short fdisk row %q", partition.ErrFormat, line)
		}
		start, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad start sector in fdisk row %q", partition.ErrFormat, line)
		}
		end, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad end sector in fdisk row %q", partition.ErrFormat, line)
		}
		rows = append(rows, partition.LayoutRow{Device: fields[0], Start: start, End: end})
	}
	return rows, nil
}
