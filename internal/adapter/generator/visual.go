package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"adflow/internal/core/domain"
)

// ImageProducer derives an image prompt from the brief and copy and
// returns a reference into the generated-images store. It stands in
// for the diffusion backend; the asset URL is content-addressed so
// repeated briefs resolve to the same image.
type ImageProducer struct {
	// BaseURL is prefixed to generated asset paths, e.g. "/images".
	BaseURL string
}

func NewImageProducer(baseURL string) *ImageProducer {
	if baseURL == "" {
		baseURL = "/images"
	}
	return &ImageProducer{BaseURL: baseURL}
}

func (p *ImageProducer) ProduceImage(ctx context.Context, brief domain.Brief, content domain.AdContent) (*domain.ImageAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompt := buildPrompt(brief, content)
	sum := sha256.Sum256([]byte(prompt))
	return &domain.ImageAsset{
		URL:    fmt.Sprintf("%s/%s.png", strings.TrimRight(p.BaseURL, "/"), hex.EncodeToString(sum[:8])),
		Prompt: prompt,
	}, nil
}

func buildPrompt(brief domain.Brief, content domain.AdContent) string {
	var b strings.Builder
	b.WriteString("Professional advertising photo of ")
	b.WriteString(brief.ProductName)
	if brief.ProductDescription != "" {
		b.WriteString(", ")
		b.WriteString(brief.ProductDescription)
	}
	if tone := brief.BrandTone; tone != "" {
		b.WriteString(", ")
		b.WriteString(tone)
		b.WriteString(" mood")
	}
	if len(content.Headlines) > 0 {
		b.WriteString(", themed: ")
		b.WriteString(content.Headlines[0])
	}
	b.WriteString(", high resolution, studio lighting")
	return b.String()
}
