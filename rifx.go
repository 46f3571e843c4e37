// Package rifx decodes Adobe Director movie files into an addressable resource
// map.
//
// Director movies are chunk containers that start with "RIFX" (big-endian,
// Macintosh) or "XFIR" (little-endian, Windows). Uncompressed movies carry a
// classic imap/mmap chunk table; Afterburner (Shockwave) movies use the FGDM or
// FGDC codec and store a zlib-compressed resource map followed by individually
// compressed resources.
//
// # Basic Usage
//
//	movie, err := rifx.Open("intro.dir")
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println(movie.Format.DirectorVersionLabel())
//	for entry := range movie.Container.Resources() {
//	    payload, err := movie.Bytes(entry.ID)
//	    if err != nil {
//	        continue // per-resource failures never affect siblings
//	    }
//	    fmt.Println(entry.Tag, len(payload))
//	}
//
// # Warnings
//
// Problems that leave the rest of the movie usable (a truncated mmap, duplicate
// KEY* children, unknown compression identifiers) do not fail Parse. They are
// collected in Movie.Warnings and logged through the logger set with
// WithLogger. WithStrict turns them into errors.
//
// # Thread Safety
//
// Parse is sequential. The returned Movie is read-only and safe for concurrent
// use; Movie.DecodeAll resolves payloads on a bounded worker pool.
package rifx

import (
	"fmt"
	"io"
	"os"
)

// Parse decodes the movie in data. data is retained by the returned Movie and
// must not be modified afterwards.
//
// Parameters:
//   - data: complete movie file contents
//   - opts: parse options (WithLogger, WithCompressionTable, WithStrict, ...)
//
// Returns:
//   - *Movie: parsed movie with its resource container
//   - error: errs.ErrFormat for structural failures, or the first warning in
//     strict mode
func Parse(data []byte, opts ...Option) (*Movie, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	return parse(data, cfg)
}

// Open reads and parses the movie file at path.
func Open(path string, opts ...Option) (*Movie, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.logger.WithField("path", path).Debug("opened movie")

	return parse(data, cfg)
}

// NewReader reads size bytes from r and parses them as a movie.
func NewReader(r io.ReaderAt, size int64, opts ...Option) (*Movie, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid movie size %d", size)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, size), data); err != nil {
		return nil, err
	}

	return parse(data, cfg)
}
