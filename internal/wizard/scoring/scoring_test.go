package scoring

import (
	"fmt"
	"testing"

	"bedrot-sim/internal/wizard/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeEmptySelection(t *testing.T) {
	got := Compute(models.NewSelection())
	assert.Equal(t, models.Stats{Comfort: 50, Social: 50, Rot: 20, Rank: models.RankNoviceNapper}, got)
}

func TestComputeFullSetup(t *testing.T) {
	sel := models.Selection{
		Base:       "White Messy",
		Flavors:    []string{"MacBook", "Switch"},
		Toppings:   []string{"Pizza", "Chips"},
		Decoration: "Squishmallow",
		Scene:      "Daylight",
	}
	got := Compute(sel)
	assert.Equal(t, models.Stats{Comfort: 100, Social: 30, Rot: 60, Rank: models.RankWeekendWarrior}, got)
}

func TestComputeIgnoresMessage(t *testing.T) {
	sel := models.NewSelection()
	sel.Message = "Do Not Disturb"
	assert.Equal(t, Compute(models.NewSelection()), Compute(sel))
}

func TestComputeClampsRot(t *testing.T) {
	sel := models.NewSelection()
	sel.Base = "Dark Grey"
	for i := 0; i < 40; i++ {
		sel.Toppings = append(sel.Toppings, fmt.Sprintf("snack-%d", i))
	}
	got := Compute(sel)
	assert.Equal(t, 100, got.Rot)
	assert.Equal(t, models.RankOneWithTheOoze, got.Rank)
}

func TestComputeBoundsForReachableStates(t *testing.T) {
	for flavors := 0; flavors <= models.MaxFlavors; flavors++ {
		for toppings := 0; toppings <= 8; toppings++ {
			for mask := 0; mask < 8; mask++ {
				sel := models.NewSelection()
				for i := 0; i < flavors; i++ {
					sel.Flavors = append(sel.Flavors, fmt.Sprintf("f%d", i))
				}
				for i := 0; i < toppings; i++ {
					sel.Toppings = append(sel.Toppings, fmt.Sprintf("t%d", i))
				}
				if mask&1 != 0 {
					sel.Base = "White Messy"
				}
				if mask&2 != 0 {
					sel.Decoration = "Tissues"
				}
				if mask&4 != 0 {
					sel.Scene = "Void"
				}

				got := Compute(sel)
				for name, v := range map[string]int{"comfort": got.Comfort, "social": got.Social, "rot": got.Rot} {
					assert.GreaterOrEqual(t, v, 0, name)
					assert.LessOrEqual(t, v, 100, name)
				}
				assert.Equal(t, RankFor(got.Rot), got.Rank)
			}
		}
	}
}

func TestRankForThresholds(t *testing.T) {
	tests := []struct {
		rot  int
		want models.Rank
	}{
		{0, models.RankNoviceNapper},
		{40, models.RankNoviceNapper},
		{41, models.RankWeekendWarrior},
		{70, models.RankWeekendWarrior},
		{71, models.RankDecompositionExpert},
		{90, models.RankDecompositionExpert},
		{91, models.RankOneWithTheOoze},
		{100, models.RankOneWithTheOoze},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.rot), func(t *testing.T) {
			assert.Equal(t, tt.want, RankFor(tt.rot))
		})
	}
}

func TestCaptionAndSummary(t *testing.T) {
	stats := models.Stats{Comfort: 100, Social: 30, Rot: 60, Rank: models.RankWeekendWarrior}

	caption := Caption(stats)
	assert.Contains(t, caption, "WEEKEND WARRIOR")
	assert.Contains(t, caption, "60% rot")

	summary := Summary(stats)
	assert.Equal(t, "STATUS REPORT", summary[0])
	assert.Equal(t, "COMFORT: [##########] 100%", summary[1])
	assert.Equal(t, "SOCIAL:  [###.......] 30%", summary[2])
	assert.Equal(t, "RANK: WEEKEND WARRIOR", summary[len(summary)-1])
}
