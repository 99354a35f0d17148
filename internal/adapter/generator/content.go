package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adflow/internal/core/domain"
)

// ContentProducer builds ad copy from a campaign brief using a fixed
// set of copy templates. It stands in for the generative copywriter at
// the same interface boundary and is deterministic for a given brief.
type ContentProducer struct{}

func NewContentProducer() *ContentProducer {
	return &ContentProducer{}
}

// ProduceContent assembles headlines, a description and a call to
// action. A brief without a product name is a permanent input error,
// not a transient one.
func (p *ContentProducer) ProduceContent(ctx context.Context, brief domain.Brief) (*domain.AdContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(brief.ProductName) == "" {
		return nil, &domain.FatalError{Err: errors.New("brief has no product name")}
	}

	product := brief.ProductName
	offer := strings.TrimSpace(brief.SpecialOffer)

	headlines := make([]string, 0, 3)
	if offer != "" {
		headlines = append(headlines,
			fmt.Sprintf("New %s - %s", product, offer),
			fmt.Sprintf("Limited Time: %s %s", product, firstWord(offer)),
		)
	} else {
		headlines = append(headlines,
			fmt.Sprintf("Premium %s Available", product),
			fmt.Sprintf("Limited: %s Special Price", product),
		)
	}
	headlines = append(headlines, fmt.Sprintf("Professional %s - Order Today", product))

	description := fmt.Sprintf("Experience the %s", product)
	if d := strings.TrimSpace(brief.ProductDescription); d != "" {
		description += " - " + d
	}
	if len(brief.SellingPoints) > 0 {
		description += ". " + strings.Join(brief.SellingPoints, ". ")
	}

	cta := "Shop Now"
	if offer != "" {
		cta = "Order Now"
	}

	return &domain.AdContent{
		Headlines:    headlines,
		Description:  description,
		CallToAction: cta,
		Generator:    "template",
	}, nil
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}
