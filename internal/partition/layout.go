package partition

import (
	"fmt"

	"go.uber.org/zap"
)

// Range is one partition's sector window inside the image. Count is passed
// verbatim to the sector copier as a block count; it carries the inspector's
// End column unmodified, and the copier's EOF handling bounds the copy the
// same way dd's count= does.
type Range struct {
	Start uint64
	Count uint64
}

// Resolver maps partition kinds to partition numbers and sector ranges.
type Resolver struct {
	inspector LayoutInspector
	log       *zap.SugaredLogger
}

func NewResolver(inspector LayoutInspector, log *zap.SugaredLogger) *Resolver {
	return &Resolver{inspector: inspector, log: log}
}

// Number resolves a partition kind to its partition number. boot and rootA
// are fixed; cert and factory depend on the image's disklabel type.
func (r *Resolver) Number(image string, kind Kind) (int, error) {
	switch kind {
	case Boot:
		return 1, nil
	case RootA:
		return 2, nil
	}

	label, err := r.inspector.DisklabelType(image)
	if err != nil {
		return 0, err
	}
	r.log.Debugw("resolved disklabel type", "image", image, "type", label)

	switch {
	case kind == Factory && label == "gpt":
		return 4, nil
	case kind == Factory && label == "dos":
		return 5, nil
	case kind == Cert && label == "gpt":
		return 5, nil
	case kind == Cert && label == "dos":
		return 6, nil
	}
	return 0, fmt.Errorf("%w: %s on %s disklabel", ErrFormat, kind, label)
}

// Range looks up the sector window of partition num in the layout listing.
func (r *Resolver) Range(image string, num int) (Range, error) {
	rows, err := r.inspector.List(image)
	if err != nil {
		return Range{}, err
	}

	device := fmt.Sprintf("%s%d", image, num)
	for _, row := range rows {
		if row.Device != device {
			continue
		}
		r.log.Debugw("resolved partition range", "device", device, "start", row.Start, "end", row.End)
		return Range{Start: row.Start, Count: row.End}, nil
	}
	return Range{}, fmt.Errorf("%w: partition %d not present in layout listing for %s", ErrFormat, num, image)
}
