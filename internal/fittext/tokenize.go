package fittext

import "strings"

type token struct {
	text string
	br   bool
}

// tokenize splits text on whitespace. Every occurrence of br becomes a
// break token, even when glued to a word, and nbsp inside a word becomes
// a literal space.
func tokenize(text, nbsp, br string) []token {
	var out []token
	for i, segment := range strings.Split(text, br) {
		if i > 0 {
			out = append(out, token{br: true})
		}
		for _, f := range strings.Fields(segment) {
			f = strings.ReplaceAll(f, nbsp, " ")
			if strings.TrimSpace(f) == "" {
				continue
			}
			out = append(out, token{text: f})
		}
	}
	return out
}
