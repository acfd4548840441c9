package models

import (
	"fmt"
	"strings"
)

// ============================================================
// Size Classes
// ============================================================

// SizeClass - пара ширин в единицах Tailwind (1 единица = 4px).
type SizeClass struct {
	Mobile  int `json:"mobile"`
	Desktop int `json:"desktop"`
}

// Class возвращает строку класса вида "w-24 md:w-32".
func (s SizeClass) Class() string {
	return fmt.Sprintf("w-%d md:w-%d", s.Mobile, s.Desktop)
}

// Pixels - ширина на десктопной сцене.
func (s SizeClass) Pixels() int {
	return s.Desktop * 4
}

// ============================================================
// Slots
// ============================================================

type VAnchor string

const (
	AnchorTop    VAnchor = "top"
	AnchorBottom VAnchor = "bottom"
)

type HAnchor string

const (
	AnchorLeft  HAnchor = "left"
	AnchorRight HAnchor = "right"
)

// Slot - фиксированная позиция элемента в процентах от сцены плюс поворот в градусах.
type Slot struct {
	Vertical   VAnchor `json:"vertical"`
	VOffset    float64 `json:"v_offset"`
	Horizontal HAnchor `json:"horizontal"`
	HOffset    float64 `json:"h_offset"`
	Rotation   int     `json:"rotation"`
	Centered   bool    `json:"centered,omitempty"`
}

// Class возвращает строку классов вида "top-[15%] left-[12%] -rotate-6".
func (s Slot) Class() string {
	parts := []string{
		fmt.Sprintf("%s-[%s%%]", s.Vertical, trimFloat(s.VOffset)),
		fmt.Sprintf("%s-[%s%%]", s.Horizontal, trimFloat(s.HOffset)),
	}
	switch {
	case s.Rotation < 0:
		parts = append(parts, fmt.Sprintf("-rotate-%d", -s.Rotation))
	case s.Rotation > 0:
		parts = append(parts, fmt.Sprintf("rotate-%d", s.Rotation))
	}
	if s.Centered {
		parts = append(parts, "-translate-x-1/2", "-translate-y-1/2")
	}
	return strings.Join(parts, " ")
}

// Origin переводит слот в левый верхний угол элемента размером w×h на сцене width×height.
func (s Slot) Origin(width, height, w, h float64) (float64, float64) {
	x := width * s.HOffset / 100
	if s.Horizontal == AnchorRight {
		x = width - x - w
	}
	y := height * s.VOffset / 100
	if s.Vertical == AnchorBottom {
		y = height - y - h
	}
	if s.Centered {
		x -= w / 2
		y -= h / 2
	}
	return x, y
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// ============================================================
// Scene
// ============================================================

const (
	StageWidth  = 650
	StageHeight = 820
)

const (
	ZBase       = 10
	ZFlavors    = 20
	ZDecoration = 30
	ZToppings   = 40
	ZBanner     = 50
)

// Layer - один перетаскиваемый элемент сцены.
type Layer struct {
	Category  Category  `json:"category"`
	Name      string    `json:"name"`
	Src       string    `json:"src"`
	Size      SizeClass `json:"size"`
	SizeClass string    `json:"size_class"`
	Slot      Slot      `json:"slot"`
	SlotClass string    `json:"slot_class"`
	Z         int       `json:"z"`
}

type Banner struct {
	Text string `json:"text"`
	Z    int    `json:"z"`
}

// Scene - всё, что нужно рендеру: фон, кровать, слои, баннер и (на последнем шаге) статистика.
type Scene struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Background  string  `json:"background"`
	Base        *Layer  `json:"base,omitempty"`
	Placeholder bool    `json:"placeholder"`
	Layers      []Layer `json:"layers"`
	Banner      *Banner `json:"banner,omitempty"`
	Step        int     `json:"step"`
	Final       bool    `json:"final"`
	Stats       *Stats  `json:"stats,omitempty"`
}
