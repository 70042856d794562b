package transformations

import "strings"

// Tokenize splits input on delim. Runs of delimiters are collapsed, so no
// empty tokens are returned.
func Tokenize(input string, delim byte) []string {
	var tokens []string
	end := 0
	for {
		start := end
		for start < len(input) && input[start] == delim {
			start++
		}
		if start == len(input) {
			return tokens
		}
		end = strings.IndexByte(input[start:], delim)
		if end < 0 {
			return append(tokens, input[start:])
		}
		end += start
		tokens = append(tokens, input[start:end])
	}
}
