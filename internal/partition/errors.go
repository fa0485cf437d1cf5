package partition

import "errors"

// Error categories surfaced by the partition engine. Callers match them with
// errors.Is; the wrapped message carries the failing operation and arguments.
var (
	// ErrConfig marks a malformed or invalid file-copy request.
	ErrConfig = errors.New("invalid file copy request")

	// ErrFormat marks an image whose partition layout cannot be handled.
	ErrFormat = errors.New("unhandled partition type")

	// ErrVerification marks a delegate call that reported success but whose
	// expected output is missing.
	ErrVerification = errors.New("verification failed")
)
