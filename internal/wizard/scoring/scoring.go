package scoring

import (
	"fmt"
	"strings"

	"bedrot-sim/internal/wizard/models"
)

// ============================================================
// Scoring Engine
// ============================================================

const (
	comfortBase = 50
	socialBase  = 50
	rotBase     = 20
)

// Compute пересчитывает статистику из выбора при каждом чтении; ничего не кэшируется.
func Compute(sel models.Selection) models.Stats {
	comfortRaw := 20*flag(sel.Base != "") +
		10*flag(sel.Scene != "") +
		15*flag(sel.Decoration != "") +
		10*len(sel.Flavors)
	socialRaw := -10 * len(sel.Flavors)
	rotRaw := 15*len(sel.Toppings) + 10*flag(sel.Base != "")

	rot := clamp(rotBase+rotRaw, 0, 100)
	return models.Stats{
		Comfort: clamp(comfortBase+comfortRaw, 0, 100),
		Social:  clamp(socialBase+socialRaw, 0, 100),
		Rot:     rot,
		Rank:    RankFor(rot),
	}
}

func RankFor(rot int) models.Rank {
	switch {
	case rot <= 40:
		return models.RankNoviceNapper
	case rot <= 70:
		return models.RankWeekendWarrior
	case rot <= 90:
		return models.RankDecompositionExpert
	default:
		return models.RankOneWithTheOoze
	}
}

// ============================================================
// Captions
// ============================================================

// Caption - текст для шаринга с рангом и процентом гниения.
func Caption(stats models.Stats) string {
	return fmt.Sprintf("Rank: %s (%d%% rot). I am fully booked this weekend. 😴\n\nGenerated my setup in the Bed Rot Simulator 👇",
		stats.Rank, stats.Rot)
}

// Summary - строки отчета, которые подписываются на экспортируемой картинке.
func Summary(stats models.Stats) []string {
	return []string{
		"STATUS REPORT",
		fmt.Sprintf("COMFORT: %s %d%%", bar(stats.Comfort), stats.Comfort),
		fmt.Sprintf("SOCIAL:  %s %d%%", bar(stats.Social), stats.Social),
		fmt.Sprintf("ROT:     %s %d%%", bar(stats.Rot), stats.Rot),
		"RANK: " + string(stats.Rank),
	}
}

func bar(pct int) string {
	filled := pct / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
