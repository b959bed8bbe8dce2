package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds downloader configuration
type Config struct {
	DownloadBaseURL string
	ImageTimeout    time.Duration
}

// Image is one resolved share link payload.
type Image struct {
	FileID      string
	ContentType string
	Data        []byte
}

// Downloader fetches share-linked files and keeps only genuine images.
type Downloader struct {
	cfg        Config
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewDownloader creates a new image downloader
func NewDownloader(cfg Config, logger *zap.Logger) *Downloader {
	return &Downloader{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.ImageTimeout},
		logger:     logger,
	}
}

// FetchImages resolves a comma-separated list of share links into image
// payloads, preserving input order among the references that resolve. A
// reference that cannot be parsed, fetched, or is not an image is skipped;
// a bad link never fails the row.
func (d *Downloader) FetchImages(ctx context.Context, refs string) []Image {
	refs = strings.TrimSpace(refs)
	if refs == "" {
		return nil
	}

	var images []Image
	for _, link := range strings.Split(refs, ",") {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}

		img, ok := d.fetchOne(ctx, link)
		if !ok {
			continue
		}
		images = append(images, img)
	}
	return images
}

// fetchOne downloads a single share link. The bool result is false for any
// failure: unrecognized link, transport error, non-200 status, or a payload
// that is not image-typed.
func (d *Downloader) fetchOne(ctx context.Context, link string) (Image, bool) {
	fileID := ExtractFileID(link)
	if fileID == "" {
		d.logger.Debug("Skipping unrecognized share link", zap.String("link", link))
		return Image{}, false
	}

	downloadURL := fmt.Sprintf("%s?export=download&id=%s", d.cfg.DownloadBaseURL, url.QueryEscape(fileID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		d.logger.Debug("Failed to build download request",
			zap.String("file_id", fileID),
			zap.Error(err))
		return Image{}, false
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Debug("Image download failed",
			zap.String("file_id", fileID),
			zap.Error(err))
		return Image{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Debug("Image download returned non-200 status",
			zap.String("file_id", fileID),
			zap.Int("status", resp.StatusCode))
		return Image{}, false
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		d.logger.Debug("Share link is not an image",
			zap.String("file_id", fileID),
			zap.String("content_type", contentType))
		return Image{}, false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		d.logger.Debug("Failed to read image body",
			zap.String("file_id", fileID),
			zap.Error(err))
		return Image{}, false
	}

	return Image{
		FileID:      fileID,
		ContentType: contentType,
		Data:        data,
	}, true
}
