// Package upload streams image payloads to the object-storage gateway
// and resolves the durable URL for the stored object. Unsupported
// payload types are rejected before any network traffic.
package upload

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/whisperwall/cli/pkg/config"
	"github.com/whisperwall/cli/pkg/logger"
)

// AcceptedImageTypes is the fixed set of payload types the service
// stores
var AcceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ErrUnsupportedType rejects payloads outside AcceptedImageTypes
type ErrUnsupportedType struct {
	Detected string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported image type %s (want jpg, png, gif, or webp)", e.Detected)
}

// ProgressFunc receives upload progress as a percentage, 0 to 100,
// reported monotonically
type ProgressFunc func(pct int)

// DetectImageType sniffs the payload and returns its MIME type, or an
// ErrUnsupportedType when it is not an accepted image format
func DetectImageType(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !AcceptedImageTypes[contentType] {
		return "", &ErrUnsupportedType{Detected: contentType}
	}
	return contentType, nil
}

type putResponse struct {
	Hash string `json:"hash"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// Client talks to the object-storage gateway
type Client struct {
	http *resty.Client
}

// New creates a client for the configured gateway
func New() *Client {
	return NewWithBaseURL(config.GetString("storage.gateway_url"))
}

// NewWithBaseURL creates a client for an explicit gateway URL
func NewWithBaseURL(baseURL string) *Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(2 * time.Minute)
	c.SetHeader("User-Agent", "Whisperwall-CLI/0.1.0")
	return &Client{http: c}
}

// Put streams the payload to the gateway, reporting progress, and
// returns the content-addressed handle of the stored object. The
// payload type is validated first; on rejection no progress callback
// fires and no request is made.
func (c *Client) Put(data []byte, onProgress ProgressFunc) (string, error) {
	contentType, err := DetectImageType(data)
	if err != nil {
		return "", err
	}

	logger.Debug("Uploading image", "content_type", contentType, "bytes", len(data))

	body := &progressReader{
		r:          bytes.NewReader(data),
		total:      int64(len(data)),
		onProgress: onProgress,
	}

	var result putResponse
	resp, err := c.http.
		R().
		SetHeader("Content-Type", contentType).
		SetContentLength(true).
		SetBody(body).
		SetResult(&result).
		Post("/v1/objects")

	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("failed to upload image: %s", resp.Status())
	}

	body.finish()
	logger.Debug("Image uploaded", "hash", result.Hash)
	return result.Hash, nil
}

// DirectURL resolves the directly fetchable URL for a stored object
func (c *Client) DirectURL(hash string) (string, error) {
	var result urlResponse
	resp, err := c.http.
		R().
		SetResult(&result).
		Get(fmt.Sprintf("/v1/objects/%s/url", hash))

	if err != nil {
		return "", fmt.Errorf("failed to resolve image URL: %w", err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("failed to resolve image URL: %s", resp.Status())
	}

	return result.URL, nil
}

// Upload puts the payload and resolves its durable URL in one step
func (c *Client) Upload(data []byte, onProgress ProgressFunc) (string, error) {
	hash, err := c.Put(data, onProgress)
	if err != nil {
		return "", err
	}
	return c.DirectURL(hash)
}

// progressReader reports monotone percentage progress as the transport
// drains it
type progressReader struct {
	r          *bytes.Reader
	total      int64
	read       int64
	lastPct    int
	onProgress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if p.onProgress != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		// Only ever report increases
		if pct > p.lastPct {
			p.lastPct = pct
			p.onProgress(pct)
		}
	}
	return n, err
}

// finish guarantees the 100% callback even if the transport drained
// the body without a final short read
func (p *progressReader) finish() {
	if p.onProgress != nil && p.lastPct < 100 {
		p.lastPct = 100
		p.onProgress(100)
	}
}
