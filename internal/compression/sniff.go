package compression

import (
	"bytes"
	"io"
	"os"
)

// Detect sniffs the file's codec from its leading bytes. The file name and
// extension are never consulted. Files shorter than the longest magic
// number, or matching no entry, report None.
func Detect(path string) (Codec, error) {
	f, err := os.Open(path)
	if err != nil {
		return None, err
	}
	defer f.Close()

	header := make([]byte, 6)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return None, err
	}

	for _, info := range codecTable {
		if bytes.HasPrefix(header[:n], info.magic) {
			return info.codec, nil
		}
	}
	return None, nil
}
