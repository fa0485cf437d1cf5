package partition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CopyToParams describes one host file to place into an image partition.
type CopyToParams struct {
	InFile    string
	Partition Kind
	OutFile   string
}

// CopyFromParams describes one in-image file to extract to the host.
type CopyFromParams struct {
	InFile    string
	Partition Kind
	OutFile   string
}

// splitRequest splits a request string on its two separators. Both separator
// counts are checked up front so that a string with the right shape but
// swapped separators still splits into three fields.
func splitRequest(s, format string) ([]string, error) {
	if strings.Count(s, ",") != 1 || strings.Count(s, ":") != 1 {
		return nil, fmt.Errorf("%w: format not matched: %s", ErrConfig, format)
	}
	fields := strings.Split(strings.ReplaceAll(s, ":", ","), ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: format not matched: %s", ErrConfig, format)
	}
	return fields, nil
}

// ParseCopyToParams parses "in-file-path,out-partition:out-file-path".
// The host file must exist and the destination must be absolute; both are
// checked here, before any capability is invoked.
func ParseCopyToParams(s string) (CopyToParams, error) {
	fields, err := splitRequest(s, "in-file-path,out-partition:out-file-path")
	if err != nil {
		return CopyToParams{}, err
	}

	kind, err := ParseKind(fields[1])
	if err != nil {
		return CopyToParams{}, err
	}

	p := CopyToParams{InFile: fields[0], Partition: kind, OutFile: fields[2]}

	if _, err := os.Stat(p.InFile); err != nil {
		return CopyToParams{}, fmt.Errorf("in-file-path %q doesn't exist: %w", p.InFile, err)
	}
	if !filepath.IsAbs(p.OutFile) {
		return CopyToParams{}, fmt.Errorf("%w: out-file-path %q isn't an absolute path", ErrConfig, p.OutFile)
	}

	return p, nil
}

// ParseCopyFromParams parses "in-partition:in-file-path,out-file-path".
// The in-image source carries no existence precondition; a missing file is
// only discovered when the partition editor runs.
func ParseCopyFromParams(s string) (CopyFromParams, error) {
	fields, err := splitRequest(s, "in-partition:in-file-path,out-file-path")
	if err != nil {
		return CopyFromParams{}, err
	}

	kind, err := ParseKind(fields[0])
	if err != nil {
		return CopyFromParams{}, err
	}

	return CopyFromParams{InFile: fields[1], Partition: kind, OutFile: fields[2]}, nil
}
