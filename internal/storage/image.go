package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var ErrInvalidImage = errors.New("invalid image payload")

// DecodeDataURL aceita "data:image/...;base64,..." ou base64 puro.
func DecodeDataURL(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 || !strings.Contains(payload[:i], ";base64") {
			return nil, ErrInvalidImage
		}
		payload = payload[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return raw, nil
}

// ToWebP decodifica, reduz para maxWidth (mantendo proporção) e recodifica em WebP.
func ToWebP(raw []byte, maxWidth int, quality float32) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	img := src
	b := src.Bounds()
	if maxWidth > 0 && b.Dx() > maxWidth {
		h := b.Dy() * maxWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ServiceImages trata o campo "imagem" dos serviços.
type ServiceImages struct {
	uploader Uploader
	maxWidth int
	quality  float32
}

func NewServiceImages(uploader Uploader, maxWidth int, quality float32) *ServiceImages {
	if quality <= 0 {
		quality = 80
	}
	return &ServiceImages{uploader: uploader, maxWidth: maxWidth, quality: quality}
}

// Store devolve o valor a gravar no serviço. Sem uploader, ou quando o
// payload já é uma URL, o valor é mantido como recebido.
func (s *ServiceImages) Store(ctx context.Context, payload string) (string, error) {
	if s == nil || s.uploader == nil || payload == "" {
		return payload, nil
	}
	if strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") {
		return payload, nil
	}

	raw, err := DecodeDataURL(payload)
	if err != nil {
		return "", err
	}

	out, err := ToWebP(raw, s.maxWidth, s.quality)
	if err != nil {
		return "", err
	}

	return s.uploader.Upload(ctx, "servicos/"+uuid.NewString()+".webp", out, "image/webp")
}
