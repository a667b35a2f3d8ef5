package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// maxSampleBytes caps a single download; drum hits are short.
const maxSampleBytes = 16 << 20

// fetch returns the raw bytes behind source along with a name whose extension identifies the encoding. Sources may be
// http(s) URLs, file:// URLs, or plain filesystem paths.
func (m *Manager) fetch(ctx context.Context, source string) (io.ReadCloser, string, error) {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Scheme == "" || len(parsed.Scheme) == 1 { // len 1: windows drive letter
		return m.fetchFile(source)
	}

	switch parsed.Scheme {
	case "http", "https":
		return m.fetchHTTP(ctx, parsed)
	case "file":
		return m.fetchFile(parsed.Path)
	default:
		return nil, "", fmt.Errorf("unsupported source scheme %q", parsed.Scheme)
	}
}

func (m *Manager) fetchFile(filePath string) (io.ReadCloser, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open sample file: %w", err)
	}

	return file, filepath.Base(filePath), nil
}

func (m *Manager) fetchHTTP(ctx context.Context, source *url.URL) (io.ReadCloser, string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("fetch limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.opts.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := m.opts.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download sample: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download sample: unexpected status %s", resp.Status)
	}

	contents, err := io.ReadAll(io.LimitReader(resp.Body, maxSampleBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read sample body: %w", err)
	}

	if len(contents) > maxSampleBytes {
		return nil, "", fmt.Errorf("sample larger than %d bytes", maxSampleBytes)
	}

	return io.NopCloser(bytes.NewReader(contents)), path.Base(source.Path), nil
}
