package partition

// The engine drives external capabilities through these interfaces. The
// production bindings live in internal/inspect, internal/sector and
// internal/fsedit; tests substitute in-memory fakes.

// LayoutRow is one partition entry from the image's partition table listing.
// Start and End are 512-byte sector values as reported by the inspector.
type LayoutRow struct {
	Device string
	Start  uint64
	End    uint64
}

// LayoutInspector reads an image's partition table.
type LayoutInspector interface {
	// DisklabelType reports the partition table format, "gpt" or "dos".
	DisklabelType(image string) (string, error)

	// List returns one row per partition, in partition-number order,
	// with Device set to "<image><number>".
	List(image string) ([]LayoutRow, error)
}

// CopyOptions control a block copy between an image and a scratch file.
// All block values are in 512-byte units.
type CopyOptions struct {
	Skip     uint64 // blocks to skip at the start of the source
	Seek     uint64 // blocks to seek into the destination
	Count    uint64 // blocks to copy; the copy stops early at source EOF
	Sparse   bool   // seek over all-zero blocks instead of writing them
	Truncate bool   // truncate the destination to the copied extent
}

// SectorCopier moves contiguous sector ranges between files.
type SectorCopier interface {
	Copy(src, dst string, opts CopyOptions) error

	// DeallocateHoles releases backing storage for all-zero regions.
	DeallocateHoles(path string) error

	// Flush forces the file's content to stable storage.
	Flush(path string) error
}

// FatEditor edits a FAT filesystem held in a scratch partition file.
// MakeDir has no create-if-missing mode and may fail on an existing
// directory; the engine downgrades that failure to a warning.
type FatEditor interface {
	MakeDir(partFile, dir string) error
	CopyIn(partFile, hostFile, imagePath string) error

	// CopyOut copies the in-image file into hostDir, keeping its base name.
	CopyOut(partFile, imagePath, hostDir string) error
}

// ExtEditor edits an ext filesystem held in a scratch partition file.
// MakeDir is idempotent. CopyOut is known to report success even when it
// fails, so the engine checks the destination's existence afterwards.
type ExtEditor interface {
	MakeDir(partFile, dir string) error
	CopyIn(partFile, hostFile, imagePath string) error
	CopyOut(partFile, imagePath, hostFile string) error
}
