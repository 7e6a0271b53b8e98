package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thomas-vilte/thoth/internal/logger"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/vcs"
)

const (
	// Images above this size are left at their original URL instead of
	// being mirrored into the repository.
	maxAssetBytes = 1_000_000

	assetDir           = ".thoth-images"
	assetCommitMessage = "Add image for issue"
)

// AssetPublisher mirrors a captured image into the target repository so
// the issue keeps rendering after the source page changes or disappears.
// Every failure is soft: the pipeline falls back to the original URL.
type AssetPublisher struct {
	client     vcs.VCSClient
	httpClient *http.Client
	now        func() time.Time
}

func NewAssetPublisher(client vcs.VCSClient) *AssetPublisher {
	return &AssetPublisher{
		client:     client,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Publish downloads the image and uploads it into the repository,
// returning the stored copy's URL. The second return is false whenever
// the original URL should be used instead.
func (p *AssetPublisher) Publish(ctx context.Context, repo models.Repository, imageURL string) (string, bool) {
	log := logger.FromContext(ctx)

	data, contentType, err := p.download(ctx, imageURL)
	if err != nil {
		log.Warn("image download failed, keeping original URL", "url", imageURL, "error", err)
		return "", false
	}

	path := fmt.Sprintf("%s/thoth-%d.%s", assetDir, p.now().UnixMilli(), extensionFor(contentType))

	storedURL, err := p.client.UploadFile(ctx, repo, path, assetCommitMessage, data)
	if err != nil {
		log.Warn("image upload failed, keeping original URL", "path", path, "error", err)
		return "", false
	}
	if storedURL == "" {
		log.Warn("image upload returned no URL, keeping original URL", "path", path)
		return "", false
	}

	log.Info("image mirrored into repository", "path", path, "bytes", len(data))
	return storedURL, true
}

func (p *AssetPublisher) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// Read one byte past the cap to detect oversize without buffering
	// an unbounded body.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxAssetBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxAssetBytes)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// extensionFor derives a file extension from the response content type,
// defaulting to png when the type is missing or not an image.
func extensionFor(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)

	if subtype, ok := strings.CutPrefix(contentType, "image/"); ok && subtype != "" {
		if subtype == "svg+xml" {
			return "svg"
		}
		return subtype
	}
	return "png"
}
