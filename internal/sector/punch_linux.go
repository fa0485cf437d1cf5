//go:build linux

package sector

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// punchChunk is the scan granularity for zero-run detection. Runs are
// punched at this alignment; smaller zero stretches stay allocated.
const punchChunk = 4096

// punchZeroRuns scans the file and punches holes under maximal runs of
// zero chunks, releasing their backing storage while keeping the size.
func punchZeroRuns(f *os.File, size int64) error {
	buf := make([]byte, punchChunk)
	var runStart, runLen int64 = -1, 0

	punch := func() error {
		if runStart < 0 || runLen == 0 {
			return nil
		}
		err := unix.Fallocate(int(f.Fd()), unix.FALLOC_FL_PUNCH_HOLE|unix.FALLOC_FL_KEEP_SIZE, runStart, runLen)
		if err != nil {
			return fmt.Errorf("punch hole at %d+%d: %w", runStart, runLen, err)
		}
		return nil
	}

	for off := int64(0); off < size; off += punchChunk {
		n, err := f.ReadAt(buf, off)
		if err != nil && err != io.EOF {
			return err
		}
		if n > 0 && allZero(buf[:n]) {
			if runStart < 0 {
				runStart = off
			}
			runLen += int64(n)
		} else {
			if err := punch(); err != nil {
				return err
			}
			runStart, runLen = -1, 0
		}
		if err == io.EOF {
			break
		}
	}
	return punch()
}
