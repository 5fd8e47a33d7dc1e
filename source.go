package srcpatch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// FileSource reads the page source from a file.
func FileSource(path string) SourceFunc {
	return func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading source: %w", err)
		}
		return string(data), nil
	}
}

// HTTPSource fetches the page source with a GET request. A nil client means
// http.DefaultClient. No timeout is added beyond what ctx and the client carry.
func HTTPSource(client *http.Client, url string) SourceFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("creating request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("fetching source: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("fetching source: HTTP %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("reading source body: %w", err)
		}
		return string(body), nil
	}
}
