package tokens

import "unicode/utf8"

// DefaultCharsPerToken is the default character-to-token ratio.
// Approximately 4 characters equals 1 token for English text.
const DefaultCharsPerToken = 4.0

// Tokenizer converts text into token ids. Only the length of the
// result is used for budget accounting, so an estimating implementation
// that fabricates ids is acceptable wherever an exact count is not.
//
// Tokenizers are model-specific and injected; nothing in this package
// holds a shared instance.
type Tokenizer interface {
	// Encode returns the token ids for the given text.
	Encode(text string) []int
}

// EstimatingTokenizer approximates tokenization with a character-to-token
// ratio. Default ratio is ~4 chars per token, which works well for
// English text. The returned ids are synthetic; only their count matters.
type EstimatingTokenizer struct {
	// CharsPerToken is the average characters per token.
	CharsPerToken float64
}

// NewEstimatingTokenizer creates a tokenizer with the default ratio.
func NewEstimatingTokenizer() *EstimatingTokenizer {
	return &EstimatingTokenizer{CharsPerToken: DefaultCharsPerToken}
}

// NewEstimatingTokenizerWithRatio creates a tokenizer with a custom ratio.
// If charsPerToken is <= 0, the default ratio (4.0) is used.
func NewEstimatingTokenizerWithRatio(charsPerToken float64) *EstimatingTokenizer {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingTokenizer{CharsPerToken: charsPerToken}
}

// Encode estimates tokenization of the text. It counts runes rather than
// bytes so multi-byte characters are not over-billed.
func (t *EstimatingTokenizer) Encode(text string) []int {
	runeCount := utf8.RuneCountInString(text)
	n := int(float64(runeCount)/t.CharsPerToken + 0.5)
	if n <= 0 {
		return nil
	}
	return make([]int, n)
}
