package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	blobs         map[string]string
	err           error
	lastContainer string
}

func (f *fakeDownloader) DownloadStream(_ context.Context, containerName string, blobName string, _ *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error) {
	f.lastContainer = containerName
	if f.err != nil {
		return azblob.DownloadStreamResponse{}, f.err
	}
	body, ok := f.blobs[blobName]
	if !ok {
		return azblob.DownloadStreamResponse{}, &azcore.ResponseError{StatusCode: http.StatusNotFound, ErrorCode: "BlobNotFound"}
	}
	return azblob.DownloadStreamResponse{
		DownloadResponse: blob.DownloadResponse{Body: io.NopCloser(strings.NewReader(body))},
	}, nil
}

func TestBlobFetch(t *testing.T) {
	fake := &fakeDownloader{blobs: map[string]string{
		"site/reports/models.json": `[{"id": "foo/bar"}]`,
	}}
	src := newBlob(fake, BlobOptions{Container: "leaderboard", Prefix: "/site/reports/"})

	data, err := src.Fetch(context.Background(), "models.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": "foo/bar"}]`, string(data))
	assert.Equal(t, "leaderboard", fake.lastContainer)

	_, err = src.Fetch(context.Background(), "cot/foo--bar/scores.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBlobFetchOtherErrors(t *testing.T) {
	fake := &fakeDownloader{err: errors.New("connection reset")}
	src := newBlob(fake, BlobOptions{Container: "leaderboard"})

	_, err := src.Fetch(context.Background(), "models.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestNewBlobRequiresContainer(t *testing.T) {
	_, err := NewBlob("https://acct.blob.core.windows.net/", BlobOptions{Anonymous: true})
	assert.Error(t, err)
}
