// Package tokens estimates the token cost of chat conversations.
//
// Counting is driven by an injected Tokenizer so the counter can be
// pointed at whichever model is in use. The bundled EstimatingTokenizer
// uses the rule-of-thumb that approximately 4 characters equals 1 token
// for English text, which provides a fast estimate without a
// model-specific vocabulary.
//
// # Counting messages
//
//	counter := tokens.NewCounterForModel(nil, "gpt-3.5-turbo")
//	total := counter.Count(sess.Messages)
//	fits := counter.FitsInLimit(sess.Messages, 128000)
//
// The total includes the fixed per-message, per-name, and reply-priming
// overheads the chat API charges on top of the raw text. Overheads are
// configurable per model; see OverheadsForModel.
//
// # Custom tokenizers
//
// Any type with Encode(text string) []int can be injected:
//
//	counter := tokens.NewCounter(myBPETokenizer, tokens.OverheadsForModel("gpt-4"))
//
// Only the length of the Encode result is used.
package tokens
