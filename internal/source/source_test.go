package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close() //nolint:errcheck
	return enc.EncodeAll(data, nil)
}

func TestDirFetch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "cot/foo--bar/scores.json", []byte(`{"average": 0.5}`))

	src := NewDir(root)
	data, err := src.Fetch(context.Background(), "cot/foo--bar/scores.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"average": 0.5}`, string(data))

	data, err = src.Fetch(context.Background(), "/cot/foo--bar/scores.json")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDirFetchNotFound(t *testing.T) {
	src := NewDir(t.TempDir())
	_, err := src.Fetch(context.Background(), "cot/missing/scores.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDirFetchRejectsEscapes(t *testing.T) {
	src := NewDir(t.TempDir())
	_, err := src.Fetch(context.Background(), "../etc/passwd")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDirFetchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDir(t.TempDir()).Fetch(ctx, "models.json")
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecompress(t *testing.T) {
	payload := []byte(`{"score": 0.25, "model_outputs": []}`)

	tests := []struct {
		name string
		in   []byte
	}{
		{name: "plain", in: payload},
		{name: "gzip", in: gzipBytes(t, payload)},
		{name: "zstd", in: zstdBytes(t, payload)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, root, "task.json", tt.in)

			out, err := NewDir(root).Fetch(context.Background(), "task.json")
			require.NoError(t, err)
			assert.Equal(t, payload, out)
		})
	}
}

func TestDecompressCorruptGzip(t *testing.T) {
	_, err := decompress("broken.json", []byte{0x1f, 0x8b, 0x00})
	assert.Error(t, err)
}
