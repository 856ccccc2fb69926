// Package media downloads message attachments from Telegram.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Telegram's bot API refuses to serve files above 20MB.
const maxAttachmentBytes = 20 << 20

// URLResolver turns a Telegram file ID into a direct download URL.
// *tgbotapi.BotAPI satisfies it.
type URLResolver interface {
	GetFileDirectURL(fileID string) (string, error)
}

// Fetcher downloads attachment bytes over HTTP. It is safe for concurrent
// use; the client is shared and never reconfigured after construction.
type Fetcher struct {
	resolver URLResolver
	client   *http.Client
	logger   *slog.Logger
}

func NewFetcher(resolver URLResolver, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		resolver: resolver,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Fetch resolves the file ID and downloads the full content. Failures are
// returned to the caller; there is no retry.
func (f *Fetcher) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	url, err := f.resolver.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve telegram file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("download attachment status: %d", resp.StatusCode)
	}
	if resp.ContentLength > maxAttachmentBytes {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("attachment too large: %d bytes (max %d)", resp.ContentLength, maxAttachmentBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment body: %w", err)
	}
	if len(data) > maxAttachmentBytes {
		return nil, fmt.Errorf("attachment too large: exceeds %d bytes", maxAttachmentBytes)
	}

	f.logger.Debug("attachment fetched", "file_id", fileID, "bytes", len(data))
	return data, nil
}
