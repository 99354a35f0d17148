package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adflow/internal/core/domain"
)

func TestProduceContentWithOffer(t *testing.T) {
	p := NewContentProducer()
	content, err := p.ProduceContent(context.Background(), domain.Brief{
		ProductName:        "EcoCharge Power Bank",
		ProductDescription: "Solar-assisted charging on the go",
		SellingPoints:      []string{"Charges two devices at once"},
		SpecialOffer:       "20% off this week",
	})
	require.NoError(t, err)

	assert.Len(t, content.Headlines, 3)
	assert.Contains(t, content.Headlines[0], "EcoCharge Power Bank")
	assert.Contains(t, content.Headlines[0], "20% off this week")
	assert.Contains(t, content.Description, "Solar-assisted charging on the go")
	assert.Contains(t, content.Description, "Charges two devices at once")
	assert.Equal(t, "Order Now", content.CallToAction)
	assert.Equal(t, "template", content.Generator)
}

func TestProduceContentWithoutOffer(t *testing.T) {
	p := NewContentProducer()
	content, err := p.ProduceContent(context.Background(), domain.Brief{ProductName: "Widget"})
	require.NoError(t, err)
	assert.Equal(t, "Shop Now", content.CallToAction)
}

// A brief without a product name is a permanent input error.
func TestProduceContentEmptyBriefIsFatal(t *testing.T) {
	p := NewContentProducer()
	_, err := p.ProduceContent(context.Background(), domain.Brief{})
	require.Error(t, err)
	assert.Equal(t, domain.OutcomeFatal, domain.ClassifyError(err).Kind)
}

// The image URL is content-addressed: identical inputs resolve to the
// same asset, different inputs to different ones.
func TestProduceImageDeterministic(t *testing.T) {
	p := NewImageProducer("/images")
	brief := domain.Brief{ProductName: "Widget", BrandTone: "playful"}
	content := domain.AdContent{Headlines: []string{"New Widget"}}

	a, err := p.ProduceImage(context.Background(), brief, content)
	require.NoError(t, err)
	b, err := p.ProduceImage(context.Background(), brief, content)
	require.NoError(t, err)
	assert.Equal(t, a.URL, b.URL)

	brief.ProductName = "Gadget"
	c, err := p.ProduceImage(context.Background(), brief, content)
	require.NoError(t, err)
	assert.NotEqual(t, a.URL, c.URL)
}
