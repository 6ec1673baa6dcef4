package board

import "strings"

// ParseMove matches alg (e.g. "e2e4", "e7e8q") against the legal moves
// of p by rendered string, rather than trying to decode the squares
// and piece independently.
func ParseMove(p *Position, alg string) (Move, bool) {
	var want = strings.ToLower(strings.TrimSpace(alg))
	for _, m := range GenerateLegalMoves(p) {
		if strings.EqualFold(m.String(), want) {
			return m, true
		}
	}
	return NoMove, false
}
