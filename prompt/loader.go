package prompt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxRemotePromptBytes bounds how much is read from a remote prompt source.
const maxRemotePromptBytes = 1 << 20

// Loader reads prompt parts from local files or http(s) URLs.
type Loader struct {
	http *http.Client
}

// NewLoader creates a loader with a modest-timeout HTTP client for
// remote sources.
func NewLoader() *Loader {
	return &Loader{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient replaces the HTTP client used for remote sources.
func (l *Loader) WithHTTPClient(client *http.Client) *Loader {
	if client != nil {
		l.http = client
	}
	return l
}

// Load reads every source in order. Sources starting with http:// or
// https:// are fetched; everything else is treated as a file path.
func (l *Loader) Load(ctx context.Context, sources []string) ([]string, error) {
	parts := make([]string, 0, len(sources))
	for _, source := range sources {
		content, err := l.loadOne(ctx, source)
		if err != nil {
			return nil, err
		}
		parts = append(parts, content)
	}
	return parts, nil
}

func (l *Loader) loadOne(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.fetch(ctx, source)
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read prompt file %s: %w", source, err)
	}
	return string(content), nil
}

func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build prompt request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch prompt %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch prompt %s: status %d", url, resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxRemotePromptBytes))
	if err != nil {
		return "", fmt.Errorf("read prompt %s: %w", url, err)
	}
	return string(content), nil
}
