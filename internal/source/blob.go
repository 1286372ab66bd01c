package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// blobDownloader is the subset of [*azblob.Client] used by Blob.
type blobDownloader interface {
	// DownloadStream maps to [azblob.Client.DownloadStream]
	DownloadStream(ctx context.Context, containerName string, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

// BlobOptions configures a Blob source.
type BlobOptions struct {
	Container string `mapstructure:"container"`
	Prefix    string `mapstructure:"prefix"`
	// Anonymous skips Entra ID credentials, for public containers or SAS URLs.
	Anonymous bool `mapstructure:"anonymous"`
}

// Blob reads report files from an Azure Blob Storage container.
type Blob struct {
	client    blobDownloader
	container string
	prefix    string
}

// NewBlob connects to the storage account at serviceURL.
func NewBlob(serviceURL string, opts BlobOptions) (*Blob, error) {
	if opts.Container == "" {
		return nil, errors.New("blob source requires a container")
	}

	var (
		client *azblob.Client
		err    error
	)
	if opts.Anonymous {
		client, err = azblob.NewClientWithNoCredential(serviceURL, nil)
	} else {
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("creating Azure credential: %w", credErr)
		}
		client, err = azblob.NewClient(serviceURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("creating blob client for %s: %w", serviceURL, err)
	}
	return newBlob(client, opts), nil
}

func newBlob(client blobDownloader, opts BlobOptions) *Blob {
	return &Blob{
		client:    client,
		container: opts.Container,
		prefix:    strings.Trim(opts.Prefix, "/"),
	}
}

// Fetch downloads the blob <prefix>/<name>.
func (b *Blob) Fetch(ctx context.Context, name string) ([]byte, error) {
	blobName := strings.TrimPrefix(name, "/")
	if b.prefix != "" {
		blobName = path.Join(b.prefix, blobName)
	}

	resp, err := b.client.DownloadStream(ctx, b.container, blobName, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("downloading blob %s/%s: %w", b.container, blobName, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s/%s: %w", b.container, blobName, err)
	}
	return decompress(name, data)
}

func (b *Blob) String() string {
	return "azblob://" + path.Join(b.container, b.prefix)
}

var _ Source = (*Blob)(nil)
