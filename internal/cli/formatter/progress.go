package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScoreBar renders a 0-100 score as a bar like ████░░░░ 72, colored
// with ScoreStyle. Out-of-range scores are clamped for the bar only.
func RenderScoreBar(score, width int) string {
	if width < 2 {
		width = 2
	}
	clamped := score
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}

	filled := clamped * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("%s %3d", ScoreStyle(score).Render(bar), score)
}
