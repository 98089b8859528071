package stats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// Fetch downloads a remote source file. The file name is taken from the
// URL path so that Format can tell spreadsheets from CSV.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (*File, error) {
	if client == nil {
		client = http.DefaultClient
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url '%s': %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download '%s': %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download '%s': unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download '%s': %w", rawURL, err)
	}

	return &File{Name: path.Base(u.Path), Content: data}, nil
}
