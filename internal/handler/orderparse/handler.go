package orderparse

import (
	"context"
	"fmt"
	"math"
	"strings"

	"winespace/internal/checkout"
	gptutils "winespace/internal/gpt/utils"
	"winespace/internal/model"

	gpt "winespace/internal/gpt"

	"github.com/rs/zerolog/log"
)

type MatchedLine struct {
	ProductId string `json:"productId"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

type UnmatchedLine struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

type Result struct {
	Matched   []MatchedLine   `json:"matched"`
	Unmatched []UnmatchedLine `json:"unmatched"`
}

// Cart returns the matched lines in the shape checkout expects.
func (r Result) Cart() []checkout.Line {
	lines := make([]checkout.Line, 0, len(r.Matched))
	for _, m := range r.Matched {
		lines = append(lines, checkout.Line{ProductId: m.ProductId, Quantity: m.Quantity})
	}
	return lines
}

type Handler struct {
	prompter gpt.Prompter
}

func New(prompter gpt.Prompter) *Handler {
	return &Handler{prompter: prompter}
}

// Parse reads a free text order against the supplier's catalogue.
func (h *Handler) Parse(ctx context.Context, message string, catalog []model.Product) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, fmt.Errorf("message is empty")
	}

	answer, err := h.prompter.Complete(ctx, fmt.Sprintf(ORDER_EXTRACTION_INSTRUCTION, catalogLines(catalog), message), "")
	if err != nil {
		log.Error().Err(err).Msg("order parse: failed to extract order lines")
		return Result{}, err
	}

	items, err := gptutils.DecodeObjects(answer, "lines")
	if err != nil {
		log.Error().Err(err).Msg("order parse: unreadable model response")
		return Result{}, err
	}

	result := Result{Matched: []MatchedLine{}, Unmatched: []UnmatchedLine{}}
	for _, item := range items {
		text := gptutils.Text(item, "product")
		if text == "" {
			continue
		}
		qty := int(math.Round(gptutils.Number(item, "quantity")))
		if qty < 0 {
			qty = 0
		}
		note := gptutils.Text(item, "note")

		p := Match(text, catalog)
		if p == nil {
			result.Unmatched = append(result.Unmatched, UnmatchedLine{Text: text, Quantity: qty, Note: note})
			continue
		}
		result.Matched = append(result.Matched, MatchedLine{
			ProductId: p.Id,
			Name:      p.Name,
			Unit:      p.Unit,
			Quantity:  qty,
			Note:      note,
		})
	}
	return result, nil
}

func catalogLines(catalog []model.Product) string {
	sb := strings.Builder{}
	for _, p := range catalog {
		sb.WriteString(fmt.Sprintf("%s | %s\n", p.Name, p.Unit))
	}
	return sb.String()
}

// Match finds the catalogue product a name refers to: an exact case-insensitive
// match first, then the shortest product name that contains it or is contained by it.
func Match(name string, catalog []model.Product) *model.Product {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	for i := range catalog {
		if strings.ToLower(catalog[i].Name) == needle {
			return &catalog[i]
		}
	}

	var best *model.Product
	for i := range catalog {
		hay := strings.ToLower(catalog[i].Name)
		if hay == "" {
			continue
		}
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			if best == nil || len(catalog[i].Name) < len(best.Name) {
				best = &catalog[i]
			}
		}
	}
	return best
}
