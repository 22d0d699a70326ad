package images

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResourceCachesDownloads(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write(pngBytes(t, 4, 4))
	}))
	t.Cleanup(server.Close)

	m := NewManager()
	first, err := m.Resource(context.Background(), server.URL+"/cat.png")
	require.NoError(t, err)
	second, err := m.Resource(context.Background(), server.URL+"/cat.png")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, "cat.png", first.Name())
}

func TestResourceRejectsNonImagePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not found</html>"))
	}))
	t.Cleanup(server.Close)

	m := NewManager()
	_, err := m.Resource(context.Background(), server.URL+"/cat.png")
	assert.Error(t, err)
}

func TestResourceEmptyURL(t *testing.T) {
	m := NewManager()
	_, err := m.Resource(context.Background(), "")
	assert.Error(t, err)
}

func TestThumbnailDownscalesWideImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes(t, 400, 200))
	}))
	t.Cleanup(server.Close)

	m := NewManager()
	res, err := m.Thumbnail(context.Background(), server.URL+"/wide.png")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(res.Content()))
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, img.Bounds().Dx())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes(t, 32, 32))
	}))
	t.Cleanup(server.Close)

	m := NewManager()
	res, err := m.Thumbnail(context.Background(), server.URL+"/small.png")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(res.Content()))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestThumbnailCachedSeparatelyFromResource(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write(pngBytes(t, 200, 100))
	}))
	t.Cleanup(server.Close)

	m := NewManager()
	u := server.URL + "/x.png"
	_, err := m.Resource(context.Background(), u)
	require.NoError(t, err)
	_, err = m.Thumbnail(context.Background(), u)
	require.NoError(t, err)
	_, err = m.Thumbnail(context.Background(), u)
	require.NoError(t, err)

	// One fetch for the full-size resource, one for the thumbnail.
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
