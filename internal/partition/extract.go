package partition

import (
	"fmt"

	"github.com/edgeforge/wictool/internal/common/fsutil"
	"go.uber.org/zap"
)

// Extractor copies partition sector ranges between the full image and
// scratch partition files.
type Extractor struct {
	copier SectorCopier
	log    *zap.SugaredLogger
}

func NewExtractor(copier SectorCopier, log *zap.SugaredLogger) *Extractor {
	return &Extractor{copier: copier, log: log}
}

// Extract copies the partition's sector range into partFile. An existing
// partFile is reused as-is, even one left behind by an earlier invocation;
// no content check is performed.
func (e *Extractor) Extract(image string, rng Range, partFile string) error {
	if fsutil.FileExists(partFile) {
		e.log.Debugw("reusing existing partition file", "partition_file", partFile)
		return nil
	}

	opts := CopyOptions{Skip: rng.Start, Count: rng.Count, Sparse: true, Truncate: true}
	if err := e.copier.Copy(image, partFile, opts); err != nil {
		return fmt.Errorf("read partition %s: %w", partFile, err)
	}
	if err := e.copier.Flush(partFile); err != nil {
		return fmt.Errorf("flush partition file %s: %w", partFile, err)
	}
	return nil
}

// WriteBack copies partFile into the image at the partition's offset without
// truncating the image, then releases storage under zero regions and forces
// the result to stable storage. partFile is left on disk.
func (e *Extractor) WriteBack(image string, rng Range, partFile string) error {
	opts := CopyOptions{Seek: rng.Start, Count: rng.Count, Sparse: true, Truncate: false}
	if err := e.copier.Copy(partFile, image, opts); err != nil {
		return fmt.Errorf("write partition %s back to %s: %w", partFile, image, err)
	}
	if err := e.copier.DeallocateHoles(image); err != nil {
		return fmt.Errorf("deallocate holes in %s: %w", image, err)
	}
	if err := e.copier.Flush(image); err != nil {
		return fmt.Errorf("flush image %s: %w", image, err)
	}
	return nil
}
