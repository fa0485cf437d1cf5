package compression

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func compressTo(t *testing.T, codec Codec, path string, content []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := codec.compress(f, bytes.NewReader(content), 9); err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func scratchFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestRunPassesUncompressedImageThrough(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "disk.wic")
	if err := os.WriteFile(image, []byte("raw image"), 0o644); err != nil {
		t.Fatal(err)
	}

	var seen string
	err := NewShim(9, zap.NewNop().Sugar()).Run(image, func(path string) error {
		seen = path
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if seen != image {
		t.Errorf("action ran on %q, want the original path %q", seen, image)
	}
	if left := scratchFiles(t, dir); len(left) != 0 {
		t.Errorf("scratch files created for uncompressed image: %v", left)
	}
}

func TestRunRoundTrip(t *testing.T) {
	exts := map[Codec]string{Xz: "xz", Bzip2: "bz2", Gzip: "gz"}
	for _, codec := range []Codec{Xz, Bzip2, Gzip} {
		t.Run(codec.Suffix(), func(t *testing.T) {
			dir := t.TempDir()
			image := filepath.Join(dir, "disk.wic."+exts[codec])
			compressTo(t, codec, image, []byte("original content"))

			err := NewShim(9, zap.NewNop().Sugar()).Run(image, func(scratch string) error {
				if got := filepath.Dir(scratch); got != dir {
					t.Errorf("scratch file not next to the image: %s", scratch)
				}
				got, err := os.ReadFile(scratch)
				if err != nil {
					return err
				}
				if string(got) != "original content" {
					t.Errorf("decompressed content mismatch: %q", got)
				}
				return os.WriteFile(scratch, []byte("edited content"), 0o644)
			})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			// the image is recompressed with the same codec
			detected, err := Detect(image)
			if err != nil {
				t.Fatal(err)
			}
			if detected != codec {
				t.Errorf("recompressed codec: got %v, want %v", detected, codec)
			}

			var out bytes.Buffer
			in, err := os.Open(image)
			if err != nil {
				t.Fatal(err)
			}
			defer in.Close()
			if err := codec.decompress(&out, in); err != nil {
				t.Fatalf("decompress result: %v", err)
			}
			if out.String() != "edited content" {
				t.Errorf("final content: %q", out.String())
			}

			if left := scratchFiles(t, dir); len(left) != 0 {
				t.Errorf("scratch files left behind: %v", left)
			}
		})
	}
}

// A failing action skips recompression, surfaces the action's error and
// still removes the scratch copy; the compressed original is untouched.
func TestRunCleansUpAfterActionFailure(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "disk.wic.gz")
	compressTo(t, Gzip, image, []byte("untouched"))
	before, err := os.ReadFile(image)
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("partition engine failed")
	runErr := NewShim(9, zap.NewNop().Sugar()).Run(image, func(string) error { return boom })
	if !errors.Is(runErr, boom) {
		t.Fatalf("Run error: got %v, want the action's error", runErr)
	}

	after, err := os.ReadFile(image)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("original image modified despite action failure")
	}
	if left := scratchFiles(t, dir); len(left) != 0 {
		t.Errorf("scratch files left behind: %v", left)
	}
}

func TestReplaceExt(t *testing.T) {
	got := replaceExt("/data/image.wic.xz", "unxz.tmp")
	if want := "/data/image.wic.unxz.tmp"; got != want {
		t.Errorf("replaceExt: got %q, want %q", got, want)
	}
	got = replaceExt("/data/image", "ungzip.tmp")
	if want := "/data/image.ungzip.tmp"; got != want {
		t.Errorf("replaceExt without extension: got %q, want %q", got, want)
	}
}

func TestNewShimClampsPreset(t *testing.T) {
	if s := NewShim(42, zap.NewNop().Sugar()); s.xzPreset != 9 {
		t.Errorf("preset 42: got %d, want 9", s.xzPreset)
	}
	if s := NewShim(-1, zap.NewNop().Sugar()); s.xzPreset != 9 {
		t.Errorf("preset -1: got %d, want 9", s.xzPreset)
	}
	if s := NewShim(3, zap.NewNop().Sugar()); s.xzPreset != 3 {
		t.Errorf("preset 3: got %d, want 3", s.xzPreset)
	}
}
