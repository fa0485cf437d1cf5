package partition

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCopyToParams(t *testing.T) {
	inFile := writeTempFile(t, "in.txt", "payload")

	p, err := ParseCopyToParams(inFile + ",boot:/etc/foo")
	if err != nil {
		t.Fatalf("ParseCopyToParams failed: %v", err)
	}
	if p.InFile != inFile {
		t.Errorf("unexpected in file: got %q, want %q", p.InFile, inFile)
	}
	if p.Partition != Boot {
		t.Errorf("unexpected partition: got %v, want %v", p.Partition, Boot)
	}
	if p.OutFile != "/etc/foo" {
		t.Errorf("unexpected out file: got %q, want %q", p.OutFile, "/etc/foo")
	}
}

// A request with the separators swapped still has one of each, so the
// separator-count check accepts it and the fields resolve in order.
func TestParseCopyToParamsSwappedSeparators(t *testing.T) {
	inFile := writeTempFile(t, "in.txt", "payload")

	p, err := ParseCopyToParams(inFile + ":boot,/etc/foo")
	if err != nil {
		t.Fatalf("ParseCopyToParams failed: %v", err)
	}
	if p.Partition != Boot || p.OutFile != "/etc/foo" {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestParseCopyToParamsRejectsBadRequests(t *testing.T) {
	inFile := writeTempFile(t, "in.txt", "payload")

	cases := []struct {
		name string
		in   string
	}{
		{"no separators", "in.txt"},
		{"doubled comma", inFile + ",,boot:/etc/foo"},
		{"doubled colon", inFile + ",boot::/etc/foo"},
		{"unknown partition", inFile + ",rootB:/etc/foo"},
		{"relative destination", inFile + ",boot:etc/foo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCopyToParams(tc.in); !errors.Is(err, ErrConfig) {
				t.Errorf("expected ErrConfig for %q, got %v", tc.in, err)
			}
		})
	}
}

func TestParseCopyToParamsMissingInFile(t *testing.T) {
	_, err := ParseCopyToParams("/nonexistent/in.txt,boot:/etc/foo")
	if err == nil {
		t.Fatal("expected error for missing in file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestParseCopyFromParams(t *testing.T) {
	p, err := ParseCopyFromParams("cert:/priv/device.crt,./device.crt")
	if err != nil {
		t.Fatalf("ParseCopyFromParams failed: %v", err)
	}
	if p.Partition != Cert {
		t.Errorf("unexpected partition: got %v, want %v", p.Partition, Cert)
	}
	if p.InFile != "/priv/device.crt" {
		t.Errorf("unexpected in file: got %q", p.InFile)
	}
	if p.OutFile != "./device.crt" {
		t.Errorf("unexpected out file: got %q", p.OutFile)
	}
}

// The in-image source has no existence precondition; only the delegate tool
// discovers a missing file.
func TestParseCopyFromParamsNoSourceCheck(t *testing.T) {
	if _, err := ParseCopyFromParams("factory:/no/such/file,out.txt"); err != nil {
		t.Fatalf("ParseCopyFromParams failed: %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{
		"boot":    Boot,
		"rootA":   RootA,
		"cert":    Cert,
		"factory": Factory,
	} {
		got, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseKind(%q): got %v, want %v", name, got, want)
		}
	}

	if _, err := ParseKind("rootB"); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for unknown kind, got %v", err)
	}
}
