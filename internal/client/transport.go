package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// decompressionTransport advertises compression support to the service and
// transparently inflates gzip, brotli, and zstd response bodies.
type decompressionTransport struct {
	base http.RoundTripper
}

func newDecompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &decompressionTransport{base: base}
}

// RoundTrip executes a single HTTP transaction and swaps the response body
// for a decompressing reader when the service compressed it.
func (t *decompressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header.Get("Accept-Encoding") == "" {
		out.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	// HEAD, 204 and 304 responses have nothing to decompress.
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	var reader io.ReadCloser
	switch lastEncoding(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = gz
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = zr.IOReadCloser()
	default:
		// Identity or an encoding we did not ask for: hand the body over as-is.
		return resp, nil
	}

	resp.Body = &chainedBody{reader: reader, underlying: resp.Body}

	// The stored headers describe the compressed representation, which no
	// longer matches what callers will read.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// chainedBody closes the decompressor and the network body together.
type chainedBody struct {
	reader     io.ReadCloser
	underlying io.ReadCloser
}

func (b *chainedBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *chainedBody) Close() error {
	readerErr := b.reader.Close()
	underlyingErr := b.underlying.Close()
	if readerErr != nil {
		return readerErr
	}
	return underlyingErr
}

// lastEncoding returns the outermost coding of a Content-Encoding header.
// With a comma-separated list the last entry was applied last, so it must be
// removed first.
func lastEncoding(header string) string {
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
