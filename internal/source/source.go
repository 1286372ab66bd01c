// Package source reads published report files from a local directory, an HTTP
// server or an Azure Blob Storage container.
package source

//go:generate go tool mockgen -source source.go -destination mock_source.go -package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned when the requested report file does not exist.
var ErrNotFound = errors.New("report file not found")

// Source fetches report files by slash-separated name relative to the reports root.
type Source interface {
	// Fetch returns the (decompressed) contents of the named file.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// decompress inflates gzip or zstd payloads and returns anything else unchanged.
func decompress(name string, data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip %s: %w", name, err)
		}
		defer zr.Close() //nolint:errcheck
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("reading gzip %s: %w", name, err)
		}
		return out, nil
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("reading zstd %s: %w", name, err)
		}
		return out, nil
	}
	return data, nil
}
