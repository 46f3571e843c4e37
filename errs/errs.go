// Package errs defines the error values returned by rifx packages.
//
// Structural failures (ErrFormat) abort a parse. Every other error is scoped to
// a single table or a single resource and leaves the rest of the movie usable.
// Per-resource failures are wrapped in a *ResourceError so callers can recover
// the id while still matching the sentinel with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports a bad signature, a short header or a map that does not
	// point where it claims to. It is fatal for the whole file.
	ErrFormat = errors.New("invalid director movie format")

	// ErrTruncatedStream reports a table whose declared size runs past the end
	// of the stream. The rows read before the cut are still returned.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrDuplicateRelationship reports a KEY* child id recorded twice.
	ErrDuplicateRelationship = errors.New("duplicate resource relationship")

	// ErrDuplicateResource reports a resource id listed twice in a map table.
	ErrDuplicateResource = errors.New("duplicate resource id")

	// ErrUnknownCodec reports a codec tag outside the known set. Parsing
	// continues with the classic map layout.
	ErrUnknownCodec = errors.New("unknown codec")

	ErrUnknownResource        = errors.New("unknown resource id")
	ErrFreeChunkRequested     = errors.New("free chunk requested")
	ErrSizeMismatch           = errors.New("decoded size mismatch")
	ErrDecompression          = errors.New("decompression failed")
	ErrUnsupportedCompression = errors.New("unsupported compression kind")

	ErrInvalidCompressionIndex = errors.New("invalid compression index")
	ErrOffsetOutOfRange        = errors.New("offset out of range")
	ErrInvalidVarint           = errors.New("invalid varint")

	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrSnapshotChecksum = errors.New("snapshot checksum mismatch")

	// ErrInvalidOption reports an option rejected by Parse, Open, NewReader or
	// snapshot.Encode.
	ErrInvalidOption = errors.New("invalid option")
)

// ResourceError ties a per-resource failure to the resource that caused it.
type ResourceError struct {
	ID  int32
	Tag string
	Err error
}

// NewResourceError wraps err with the id and tag of the failing resource.
func NewResourceError(id int32, tag string, err error) *ResourceError {
	return &ResourceError{ID: id, Tag: tag, Err: err}
}

func (e *ResourceError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("resource %d: %v", e.ID, e.Err)
	}

	return fmt.Sprintf("resource %d (%s): %v", e.ID, e.Tag, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ResourceID extracts the resource id from err if it carries one.
func ResourceID(err error) (int32, bool) {
	var re *ResourceError
	if errors.As(err, &re) {
		return re.ID, true
	}

	return 0, false
}
