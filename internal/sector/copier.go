// Package sector implements the 512-byte block copier used to move
// partition contents between a wic image and scratch partition files.
package sector

import (
	"fmt"
	"io"
	"os"

	"github.com/edgeforge/wictool/internal/partition"
)

// BlockSize is the fixed copy unit. Partition table sector values are
// expressed in this unit regardless of the device's native sector size.
const BlockSize = 512

// Copier is a partition.SectorCopier backed by plain file I/O.
type Copier struct{}

// Copy moves opts.Count blocks from src to dst, honoring skip/seek offsets.
// In sparse mode all-zero blocks are seeked over rather than written; on a
// non-truncating copy this leaves the destination's previous bytes under the
// hole untouched. The copy ends early and without error at source EOF.
func (Copier) Copy(src, dst string, opts partition.CopyOptions) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	flags := os.O_WRONLY | os.O_CREATE
	if opts.Truncate {
		flags |= os.O_TRUNC
	}
	out, err := os.OpenFile(dst, flags, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := in.Seek(int64(opts.Skip)*BlockSize, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s to block %d: %w", src, opts.Skip, err)
	}

	off := int64(opts.Seek) * BlockSize
	buf := make([]byte, BlockSize)

	for blocks := uint64(0); opts.Count == 0 || blocks < opts.Count; blocks++ {
		n, rerr := io.ReadFull(in, buf)
		if n > 0 {
			if opts.Sparse && allZero(buf[:n]) {
				// leave a hole
			} else if _, werr := out.WriteAt(buf[:n], off); werr != nil {
				return fmt.Errorf("write %s at offset %d: %w", dst, off, werr)
			}
			off += int64(n)
		}
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("read %s: %w", src, rerr)
		}
	}

	// A trailing hole would otherwise leave the file short.
	if opts.Truncate {
		if err := out.Truncate(off); err != nil {
			return fmt.Errorf("truncate %s to %d: %w", dst, off, err)
		}
	}

	return out.Close()
}

// Flush forces the file to stable storage.
func (Copier) Flush(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

// DeallocateHoles releases backing storage for all-zero regions of the file,
// keeping its apparent size. On platforms without hole punching this is a
// no-op.
func (Copier) DeallocateHoles(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	return punchZeroRuns(f, info.Size())
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
