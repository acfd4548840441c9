package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"base":        CategoryBase,
		"Bedding":     CategoryBase,
		" tech ":      CategoryFlavors,
		"snacks":      CategoryToppings,
		"COMFORT":     CategoryDecoration,
		"decorations": CategoryDecoration,
		"time":        CategoryScene,
		"status":      CategoryMessage,
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			got, err := ParseCategory(raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseCategory("furniture")
	assert.Error(t, err)
}

func TestSelectionValidate(t *testing.T) {
	t.Run("empty selection is valid", func(t *testing.T) {
		assert.NoError(t, NewSelection().Validate())
	})

	t.Run("reports every violation", func(t *testing.T) {
		sel := Selection{
			Flavors:  []string{"MacBook", "Switch", "Kindle", "MacBook"},
			Toppings: []string{"Pizza", "Pizza"},
			Message:  strings.Repeat("z", MaxMessageLength+1),
		}
		err := sel.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds capacity")
		assert.Contains(t, err.Error(), `flavors: duplicate "MacBook"`)
		assert.Contains(t, err.Error(), `toppings: duplicate "Pizza"`)
		assert.Contains(t, err.Error(), "message")
	})

	t.Run("message limit counts runes", func(t *testing.T) {
		sel := Selection{Message: strings.Repeat("😴", MaxMessageLength)}
		assert.NoError(t, sel.Validate())
	})
}

func TestSelectionCloneIsDeep(t *testing.T) {
	sel := Selection{Flavors: []string{"MacBook"}, Toppings: []string{"Chips"}}
	clone := sel.Clone()
	clone.Flavors[0] = "Switch"
	clone.Toppings = append(clone.Toppings, "Pizza")

	assert.Equal(t, []string{"MacBook"}, sel.Flavors)
	assert.Equal(t, []string{"Chips"}, sel.Toppings)
}

func TestSlotClass(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		want string
	}{
		{"negative rotation", Slot{Vertical: AnchorTop, VOffset: 15, Horizontal: AnchorLeft, HOffset: 12, Rotation: -6}, "top-[15%] left-[12%] -rotate-6"},
		{"positive rotation", Slot{Vertical: AnchorBottom, VOffset: 20, Horizontal: AnchorRight, HOffset: 15, Rotation: 12}, "bottom-[20%] right-[15%] rotate-12"},
		{"centered", Slot{Vertical: AnchorTop, VOffset: 42, Horizontal: AnchorLeft, HOffset: 50, Centered: true}, "top-[42%] left-[50%] -translate-x-1/2 -translate-y-1/2"},
		{"fractional offset", Slot{Vertical: AnchorTop, VOffset: 12.5, Horizontal: AnchorLeft, HOffset: 0}, "top-[12.5%] left-[0%]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Class())
		})
	}
}

func TestSlotOrigin(t *testing.T) {
	right := Slot{Vertical: AnchorBottom, VOffset: 10, Horizontal: AnchorRight, HOffset: 10}
	x, y := right.Origin(1000, 500, 100, 50)
	assert.InDelta(t, 800, x, 0.001)
	assert.InDelta(t, 400, y, 0.001)

	center := Slot{Vertical: AnchorTop, VOffset: 50, Horizontal: AnchorLeft, HOffset: 50, Centered: true}
	x, y = center.Origin(1000, 500, 100, 50)
	assert.InDelta(t, 450, x, 0.001)
	assert.InDelta(t, 225, y, 0.001)
}

func TestSizeClass(t *testing.T) {
	s := SizeClass{Mobile: 24, Desktop: 32}
	assert.Equal(t, "w-24 md:w-32", s.Class())
	assert.Equal(t, 128, s.Pixels())
}
