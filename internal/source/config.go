package source

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Kind names a Source implementation.
type Kind string

const (
	KindDir  Kind = "dir"
	KindHTTP Kind = "http"
	KindBlob Kind = "azblob"
)

// Spec describes where reports live. Options are implementation specific and
// decoded with mapstructure.
type Spec struct {
	Kind     Kind
	Location string
	Options  map[string]any
}

// HTTPOptions configures an HTTP source.
type HTTPOptions struct {
	Timeout time.Duration     `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
}

// New builds the Source described by spec. An empty Kind is inferred from the location.
func New(spec Spec) (Source, error) {
	kind := spec.Kind
	if kind == "" {
		kind = InferKind(spec.Location)
	}

	switch kind {
	case KindDir:
		if spec.Location == "" {
			return nil, fmt.Errorf("dir source requires a location")
		}
		return NewDir(spec.Location), nil
	case KindHTTP:
		var opts HTTPOptions
		if err := decodeOptions(spec.Options, &opts); err != nil {
			return nil, fmt.Errorf("http source options: %w", err)
		}
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultHTTPTimeout
		}
		return NewHTTP(spec.Location, &http.Client{Timeout: timeout}, opts.Headers)
	case KindBlob:
		var opts BlobOptions
		if err := decodeOptions(spec.Options, &opts); err != nil {
			return nil, fmt.Errorf("azblob source options: %w", err)
		}
		serviceURL, container, prefix, err := splitBlobURL(spec.Location)
		if err != nil {
			return nil, err
		}
		if opts.Container == "" {
			opts.Container = container
		}
		if opts.Prefix == "" {
			opts.Prefix = prefix
		}
		return NewBlob(serviceURL, opts)
	default:
		return nil, fmt.Errorf("unknown reports source type %q", kind)
	}
}

// InferKind guesses the source type from a location string.
func InferKind(location string) Kind {
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return KindDir
	}
	if strings.HasSuffix(u.Hostname(), ".blob.core.windows.net") {
		return KindBlob
	}
	return KindHTTP
}

// splitBlobURL splits https://acct.blob.core.windows.net/container/prefix into the
// service URL, container and prefix. The query string (SAS token) stays on the service URL.
func splitBlobURL(location string) (serviceURL, container, prefix string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", "", fmt.Errorf("parsing blob URL %q: %w", location, err)
	}
	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	if parts[0] != "" {
		container = parts[0]
	}
	if len(parts) == 2 {
		prefix = parts[1]
	}
	u.Path = "/"
	return u.String(), container, prefix, nil
}

func decodeOptions(in map[string]any, out any) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
