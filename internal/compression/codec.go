// Package compression makes partition editing transparent over whole-image
// compression: it sniffs the image's codec by content, decompresses to a
// scratch copy, runs an arbitrary action on it and recompresses the result.
package compression

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/ulikunitz/xz"
)

// Codec enumerates the whole-image compression formats the tool handles.
type Codec int

const (
	None Codec = iota
	Xz
	Bzip2
	Gzip
)

type codecInfo struct {
	codec  Codec
	marker string
	magic  []byte
	suffix string
}

// codecTable is ordered; detection takes the first magic-number match.
var codecTable = []codecInfo{
	{Xz, "XZ compressed data", []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}, "unxz.tmp"},
	{Bzip2, "bzip2 compressed data", []byte{0x42, 0x5A, 0x68}, "unbzip2.tmp"},
	{Gzip, "gzip compressed data", []byte{0x1F, 0x8B}, "ungzip.tmp"},
}

func (c Codec) info() *codecInfo {
	for i := range codecTable {
		if codecTable[i].codec == c {
			return &codecTable[i]
		}
	}
	return nil
}

// String returns the codec's human-readable marker description.
func (c Codec) String() string {
	if info := c.info(); info != nil {
		return info.marker
	}
	return "uncompressed"
}

// Suffix returns the scratch-file suffix used while the image is unpacked.
func (c Codec) Suffix() string {
	if info := c.info(); info != nil {
		return info.suffix
	}
	return ""
}

// dictCaps maps the xz preset level to the standard xz dictionary sizes,
// the knob the Go encoder exposes in place of a preset.
var dictCaps = [10]int{
	256 << 10, // 0
	1 << 20,   // 1
	2 << 20,   // 2
	4 << 20,   // 3
	4 << 20,   // 4
	8 << 20,   // 5
	8 << 20,   // 6
	16 << 20,  // 7
	32 << 20,  // 8
	64 << 20,  // 9
}

// compress writes src through the codec's encoder into dst. xzPreset only
// affects the Xz codec; bzip2 and gzip always use their best level.
func (c Codec) compress(dst io.Writer, src io.Reader, xzPreset int) error {
	switch c {
	case Xz:
		cfg := xz.WriterConfig{DictCap: dictCaps[xzPreset]}
		w, err := cfg.NewWriter(dst)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
		return w.Close()
	case Bzip2:
		w, err := bzip2.NewWriter(dst, &bzip2.WriterConfig{Level: bzip2.BestCompression})
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
		return w.Close()
	case Gzip:
		w, err := gzip.NewWriterLevel(dst, gzip.BestCompression)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
		return w.Close()
	}
	return fmt.Errorf("cannot compress with codec %q", c)
}

// decompress writes src through the codec's decoder into dst.
func (c Codec) decompress(dst io.Writer, src io.Reader) error {
	switch c {
	case Xz:
		r, err := xz.NewReader(src)
		if err != nil {
			return err
		}
		_, err = io.Copy(dst, r)
		return err
	case Bzip2:
		r, err := bzip2.NewReader(src, nil)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, r); err != nil {
			return err
		}
		return r.Close()
	case Gzip:
		r, err := gzip.NewReader(src)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, r); err != nil {
			return err
		}
		return r.Close()
	}
	return fmt.Errorf("cannot decompress with codec %q", c)
}
