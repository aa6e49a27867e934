package conversation

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

// countTokens estimates how many tokens the context costs. When the encoding
// cannot be loaded it falls back to roughly four bytes per token.
func countTokens(text string) int {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err == nil {
			tk = enc
		}
	})

	if tk == nil {
		n := len(text) / 4
		if n == 0 && utf8.RuneCountInString(text) > 0 {
			n = 1
		}
		return n
	}
	return len(tk.Encode(text, nil, nil))
}
