package compression

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Shim wraps an action on an image file so the action always sees an
// uncompressed image. The xz preset is fixed at construction; there is no
// ambient configuration.
type Shim struct {
	xzPreset int
	log      *zap.SugaredLogger
}

// NewShim clamps out-of-range xz presets to 9, the default.
func NewShim(xzPreset int, log *zap.SugaredLogger) *Shim {
	if xzPreset < 0 || xzPreset > 9 {
		xzPreset = 9
	}
	return &Shim{xzPreset: xzPreset, log: log}
}

// Run detects the image's compression. An uncompressed image is handed to
// the action unchanged. A compressed one is decompressed to a scratch file
// next to it, the action runs on the scratch copy, and on success the
// scratch copy is recompressed over the original path. The scratch file is
// removed on every path; a removal failure never masks an earlier error and
// is only reported when nothing else failed.
func (s *Shim) Run(image string, action func(string) error) error {
	codec, err := Detect(image)
	if err != nil {
		return fmt.Errorf("detect compression of %s: %w", image, err)
	}
	if codec == None {
		return action(image)
	}

	s.log.Infow("compressed image found, decompressing", "image", image, "format", codec.String())
	scratch := replaceExt(image, codec.Suffix())
	if err := s.decompressFile(codec, image, scratch); err != nil {
		return fmt.Errorf("decompress %s: %w", image, err)
	}

	runErr := action(scratch)
	if runErr == nil {
		s.log.Infow("recompressing image", "from", scratch, "to", image)
		if err := s.compressFile(codec, scratch, image); err != nil {
			runErr = fmt.Errorf("recompress %s: %w", image, err)
		}
	}

	if err := os.Remove(scratch); err != nil {
		if runErr == nil {
			runErr = fmt.Errorf("remove scratch image: %w", err)
		} else {
			s.log.Warnw("could not remove scratch image", "scratch", scratch, "error", err)
		}
	}
	return runErr
}

func (s *Shim) decompressFile(codec Codec, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := codec.decompress(out, in); err != nil {
		return err
	}
	return out.Close()
}

func (s *Shim) compressFile(codec Codec, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := codec.compress(out, in, s.xzPreset); err != nil {
		return err
	}
	return out.Close()
}

// replaceExt swaps the file's last extension for the scratch suffix, so
// image.wic.xz unpacks to image.wic.unxz.tmp.
func replaceExt(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + suffix
}
