package schema

// BraceNotFound is returned by MatchBrace when the text ends before the
// opening brace is balanced.
const BraceNotFound = -1

// MatchBrace scans text forward from open, the index of an opening brace, and
// returns the index of the brace that balances it. The scan maintains a depth
// counter: each '{' increments it, each '}' decrements it, and the index where
// depth returns to zero is the answer. Callers decide how to treat
// BraceNotFound; a malformed block typically skips just that block.
func MatchBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return BraceNotFound
}
