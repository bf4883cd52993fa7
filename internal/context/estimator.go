package ctxengine

import "github.com/ctxkit/ctxkit/pkg/chat"

// TokenEstimator estimates the token count of a string.
type TokenEstimator interface {
	Estimate(text string) int
}

// CharEstimator estimates tokens using a simple characters-per-token ratio.
// A ratio of ~4 works well for English; ~3 for French or other Latin languages.
type CharEstimator struct {
	CharsPerToken float64
}

// NewCharEstimator creates a CharEstimator with the given ratio.
// If charsPerToken is <= 0, defaults to 4.0 (English approximation).
func NewCharEstimator(charsPerToken float64) *CharEstimator {
	if charsPerToken <= 0 {
		charsPerToken = 4.0
	}
	return &CharEstimator{CharsPerToken: charsPerToken}
}

// Estimate returns the estimated token count for the given text.
func (e *CharEstimator) Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := float64(len(text)) / e.CharsPerToken
	// Always round up to avoid underestimation.
	return int(tokens) + 1
}

// imageTokenCost is a conservative estimate for one image at "auto" detail.
const imageTokenCost = 765

// messageOverhead covers role tokens and per-message formatting.
const messageOverhead = 4

// EstimateMessages returns the total estimated tokens for a context.
func EstimateMessages(estimator TokenEstimator, history chat.Context) int {
	total := 0
	for _, m := range history {
		total += messageOverhead

		switch m.Type {
		case chat.MessageText:
			total += estimator.Estimate(m.Content)
			if len(m.ToolCalls) > 0 {
				total += estimator.Estimate(string(m.ToolCalls))
			}
		case chat.MessageImage:
			total += imageTokenCost
		case chat.MessageTool:
			if m.Output == nil {
				continue
			}
			for _, v := range m.Output.Values {
				switch v.Type {
				case chat.ItemText:
					total += estimator.Estimate(v.Text)
				case chat.ItemImage:
					total += imageTokenCost
				}
			}
		}
	}
	return total
}
