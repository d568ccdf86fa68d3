package concierge

// PreviewScore computes the advisory score shown to the prospect while
// the conversation is in flight. The intake endpoint recomputes its own
// score with a looser formula; the two deliberately diverge.
func PreviewScore(answers map[string]any) int {
	score := 40

	if styles, ok := answers["style"].([]string); ok {
		score += len(styles) * 8
		for _, style := range styles {
			if style == "luxury" || style == "bold" {
				score += 10
				break
			}
		}
	}

	bonus := 5
	if budget, ok := answers["budget"].(string); ok {
		switch budget {
		case "over-600":
			bonus = 30
		case "300-600":
			bonus = 20
		case "150-300":
			bonus = 12
		}
	}
	score += bonus

	if score > 100 {
		score = 100
	}
	return score
}
