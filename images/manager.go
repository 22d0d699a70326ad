package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"path"
	"sync"

	// Decoders for the formats the GIF APIs serve previews in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"giffer/httputil"
	"giffer/logger"

	"fyne.io/fyne/v2"
	"github.com/nfnt/resize"
)

// ThumbnailWidth is the target width for gallery thumbnails.
const ThumbnailWidth = 96

var log = logger.New("images")

// Manager downloads preview images and keeps them in an in-memory cache for
// the lifetime of the session. Nothing is written to disk.
type Manager struct {
	mu    sync.Mutex
	cache map[string]fyne.Resource
}

// NewManager creates an empty image manager.
func NewManager() *Manager {
	return &Manager{
		cache: make(map[string]fyne.Resource),
	}
}

// Resource fetches the image at imageURL and wraps the raw bytes as a Fyne
// resource, suitable for the full-size card.
func (m *Manager) Resource(ctx context.Context, imageURL string) (fyne.Resource, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image url")
	}

	if res, ok := m.lookup(imageURL); ok {
		return res, nil
	}

	data, err := httputil.GetBytes(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	// Validate that the payload is a decodable image and not an HTML error page.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("image validation failed for %s: %w", imageURL, err)
	}

	res := fyne.NewStaticResource(resourceName(imageURL), data)
	m.store(imageURL, res)
	return res, nil
}

// Thumbnail fetches, decodes, and downscales the image at imageURL for the
// vote galleries. The result is re-encoded as PNG.
func (m *Manager) Thumbnail(ctx context.Context, imageURL string) (fyne.Resource, error) {
	key := "thumb:" + imageURL
	if res, ok := m.lookup(key); ok {
		return res, nil
	}

	data, err := httputil.GetBytes(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", imageURL, err)
	}

	thumb := img
	if img.Bounds().Dx() > ThumbnailWidth {
		thumb = resize.Resize(ThumbnailWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	log.Debug().
		Str("url", imageURL).
		Str("format", format).
		Int("bytes", buf.Len()).
		Msg("thumbnail ready")

	res := fyne.NewStaticResource(resourceName(imageURL), buf.Bytes())
	m.store(key, res)
	return res, nil
}

func (m *Manager) lookup(key string) (fyne.Resource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.cache[key]
	return res, ok
}

func (m *Manager) store(key string, res fyne.Resource) {
	m.mu.Lock()
	m.cache[key] = res
	m.mu.Unlock()
}

// resourceName derives a stable resource name from the URL path.
func resourceName(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil || u.Path == "" {
		return imageURL
	}
	return path.Base(u.Path)
}
