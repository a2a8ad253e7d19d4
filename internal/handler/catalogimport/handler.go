package catalogimport

import (
	"context"
	"fmt"
	"strings"

	"winespace/internal/fetcher"
	gptutils "winespace/internal/gpt/utils"
	"winespace/internal/model"

	gpt "winespace/internal/gpt"

	"github.com/rs/zerolog/log"
)

// Product is a catalogue line as the model read it, before it belongs to a supplier.
type Product struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	MinOrderQty int     `json:"minOrderQty"`
	ImageUrl    string  `json:"imageUrl"`
}

type Truncater interface {
	Truncate(s string, max int) string
}

type Handler struct {
	prompter  gpt.Prompter
	fetcher   fetcher.Fetcher
	tokenizer Truncater
	maxTokens int
}

func New(prompter gpt.Prompter, fetcher fetcher.Fetcher, tokenizer Truncater, maxTokens int) *Handler {
	return &Handler{
		prompter:  prompter,
		fetcher:   fetcher,
		tokenizer: tokenizer,
		maxTokens: maxTokens,
	}
}

// Extract reads products from the page at url, or from rawHTML when it is given.
func (h *Handler) Extract(ctx context.Context, url, rawHTML string) ([]Product, error) {
	page := rawHTML
	if strings.TrimSpace(page) == "" {
		if url == "" {
			return nil, fmt.Errorf("either a url or the page html is required")
		}

		var err error
		page, err = h.fetcher.Fetch(ctx, url)
		if err != nil {
			log.Error().Err(err).Msgf("catalog import: failed to fetch %s", url)
			return nil, err
		}
	}

	text := fetcher.StripHTML(page)
	if text == "" {
		return []Product{}, nil
	}
	text = h.tokenizer.Truncate(text, h.maxTokens)

	answer, err := h.prompter.Complete(ctx, fmt.Sprintf(CATALOG_EXTRACTION_INSTRUCTION, text), "")
	if err != nil {
		log.Error().Err(err).Msg("catalog import: failed to extract products")
		return nil, err
	}

	products, err := responseToProducts(answer)
	if err != nil {
		log.Error().Err(err).Msg("catalog import: unreadable model response")
		return nil, err
	}

	log.Debug().Msgf("catalog import: %d products extracted", len(products))
	return products, nil
}

func responseToProducts(answer string) ([]Product, error) {
	items, err := gptutils.DecodeObjects(answer, "products")
	if err != nil {
		return nil, err
	}

	products := []Product{}
	for _, item := range items {
		name := gptutils.Text(item, "name")
		if name == "" {
			continue
		}

		price := gptutils.Number(item, "price")
		if price < 0 {
			price = 0
		}
		minQty := int(gptutils.Number(item, "minOrderQty"))
		if minQty < 0 {
			minQty = 0
		}

		products = append(products, Product{
			Name:        name,
			Description: gptutils.Text(item, "description"),
			Category:    gptutils.Text(item, "category"),
			Unit:        gptutils.Text(item, "unit"),
			Price:       price,
			MinOrderQty: minQty,
			ImageUrl:    gptutils.Text(item, "imageUrl"),
		})
	}
	return products, nil
}

// ToProducts turns extracted lines into active catalogue products of the
// supplier. Lines without a name are dropped.
func ToProducts(supplierId string, extracted []Product) []model.Product {
	out := make([]model.Product, 0, len(extracted))
	for _, p := range extracted {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		unit := p.Unit
		if unit == "" {
			unit = "each"
		}
		out = append(out, model.Product{
			SupplierId:  supplierId,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Unit:        unit,
			BasePrice:   p.Price,
			MinOrderQty: p.MinOrderQty,
			ImageUrl:    p.ImageUrl,
			Active:      true,
		})
	}
	return out
}
