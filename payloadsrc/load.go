// Package payloadsrc supplies application payloads to a simulator: reading
// a single file fully into memory (with the reference implementation's
// unreadable/too-large-file fatal checks), and optionally watching a
// directory for new payload files. Grounded on cmd/dtn-tool/exchange.go's
// fsnotify usage and cla/bbc/transmission.go's xz reader/writer pair.
package payloadsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// ErrTooLarge is returned by Load when a payload file is larger than
// math.MaxInt32 bytes, either on disk or after decompression.
var ErrTooLarge = errors.New("payloadsrc: file exceeds maximum payload size")

// Load reads path fully into memory. A path ending in ".xz" is transparently
// decompressed. A file larger than math.MaxInt32 bytes is a fatal
// IOFailure, mirroring the reference simulator's readFile check.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}
	if info.Size() > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, info.Size())
	}

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("payloadsrc: %w", err)
		}
		r = xzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}
	if len(data) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %s decompresses to %d bytes", ErrTooLarge, path, len(data))
	}
	return data, nil
}

// Compress xz-compresses data, for tests and tooling that produce .xz
// payload fixtures.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}
	return buf.Bytes(), nil
}
