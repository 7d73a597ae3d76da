package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agendamento-api/internal/config"
)

type fakeUploader struct {
	key         string
	body        []byte
	contentType string
}

func (u *fakeUploader) Upload(_ context.Context, key string, body []byte, contentType string) (string, error) {
	u.key, u.body, u.contentType = key, body, contentType
	return "https://cdn.example.com/" + key, nil
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeDataURL(t *testing.T) {
	raw, err := DecodeDataURL("data:text/plain;base64,b2k=")
	require.NoError(t, err)
	assert.Equal(t, "oi", string(raw))

	raw, err = DecodeDataURL("b2k=")
	require.NoError(t, err)
	assert.Equal(t, "oi", string(raw))

	_, err = DecodeDataURL("data:image/png,notbase64")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = DecodeDataURL("***")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestServiceImagesConvertsAndUploads(t *testing.T) {
	up := &fakeUploader{}
	s := NewServiceImages(up, 100, 75)

	url, err := s.Store(context.Background(), pngDataURL(t, 400, 200))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.key, "servicos/"))
	assert.True(t, strings.HasSuffix(up.key, ".webp"))
	assert.Equal(t, "image/webp", up.contentType)
	assert.Equal(t, "https://cdn.example.com/"+up.key, url)

	cfg, err := webp.DecodeConfig(bytes.NewReader(up.body))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestServiceImagesPassThrough(t *testing.T) {
	s := NewServiceImages(nil, 100, 75)
	got, err := s.Store(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", got)

	up := &fakeUploader{}
	s = NewServiceImages(up, 100, 75)
	got, err = s.Store(context.Background(), "https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", got)
	assert.Empty(t, up.key)

	_, err = s.Store(context.Background(), "data:image/png;base64,b2k=")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestS3PublicURL(t *testing.T) {
	_, err := NewS3Storage(config.S3Config{})
	assert.Error(t, err)

	s, err := NewS3Storage(config.S3Config{Bucket: "imgs", AccessKeyID: "k", SecretAccessKey: "s", Region: "sa-east-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://imgs.s3.sa-east-1.amazonaws.com/a/b.webp", s.PublicURL("/a/b.webp"))

	s, err = NewS3Storage(config.S3Config{Bucket: "imgs", AccessKeyID: "k", SecretAccessKey: "s", PublicURL: "http://localhost:9000/imgs/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/imgs/x.webp", s.PublicURL("x.webp"))
}
