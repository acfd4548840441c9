package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Categories
// ============================================================

type Category string

const (
	CategoryBase       Category = "base"
	CategoryFlavors    Category = "flavors"
	CategoryToppings   Category = "toppings"
	CategoryDecoration Category = "decorations"
	CategoryScene      Category = "scene"
	CategoryMessage    Category = "message"
)

const (
	MaxFlavors       = 3
	MaxMessageLength = 25
	StepCount        = 7
	FinalStep        = StepCount - 1
)

var categoryAliases = map[string]Category{
	"base":        CategoryBase,
	"bedding":     CategoryBase,
	"flavors":     CategoryFlavors,
	"flavor":      CategoryFlavors,
	"tech":        CategoryFlavors,
	"toppings":    CategoryToppings,
	"topping":     CategoryToppings,
	"snacks":      CategoryToppings,
	"decorations": CategoryDecoration,
	"decoration":  CategoryDecoration,
	"comfort":     CategoryDecoration,
	"scene":       CategoryScene,
	"time":        CategoryScene,
	"message":     CategoryMessage,
	"status":      CategoryMessage,
}

// ParseCategory принимает как внутренние ключи, так и подписи шагов мастера.
func ParseCategory(raw string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// ============================================================
// Selection State
// ============================================================

// Selection - полный набор выбора пользователя. Пустая строка означает "ничего".
type Selection struct {
	Base       string   `json:"base"`
	Flavors    []string `json:"flavors"`
	Toppings   []string `json:"toppings"`
	Decoration string   `json:"decoration"`
	Scene      string   `json:"scene"`
	Message    string   `json:"message"`
}

func NewSelection() Selection {
	return Selection{
		Flavors:  []string{},
		Toppings: []string{},
	}
}

// Clone возвращает глубокую копию: читатели не делят срезы со store.
func (s Selection) Clone() Selection {
	out := s
	out.Flavors = append(make([]string, 0, len(s.Flavors)), s.Flavors...)
	out.Toppings = append(make([]string, 0, len(s.Toppings)), s.Toppings...)
	return out
}

// Validate проверяет инварианты формы выбора.
func (s Selection) Validate() error {
	var errs []error
	if len(s.Flavors) > MaxFlavors {
		errs = append(errs, fmt.Errorf("flavors: %d items exceeds capacity %d", len(s.Flavors), MaxFlavors))
	}
	if dup, ok := firstDuplicate(s.Flavors); ok {
		errs = append(errs, fmt.Errorf("flavors: duplicate %q", dup))
	}
	if dup, ok := firstDuplicate(s.Toppings); ok {
		errs = append(errs, fmt.Errorf("toppings: duplicate %q", dup))
	}
	if n := utf8.RuneCountInString(s.Message); n > MaxMessageLength {
		errs = append(errs, fmt.Errorf("message: %d characters exceeds %d", n, MaxMessageLength))
	}
	return errors.Join(errs...)
}

func firstDuplicate(items []string) (string, bool) {
	for i, item := range items {
		if slices.Contains(items[:i], item) {
			return item, true
		}
	}
	return "", false
}

// ============================================================
// Intents
// ============================================================

type Action string

const (
	ActionSelect  Action = "select"
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionToggle  Action = "toggle"
	ActionSetText Action = "set_text"
	ActionGoTo    Action = "goto"
	ActionNext    Action = "next"
	ActionPrev    Action = "prev"
	ActionReset   Action = "reset"
)

// Intent - одно действие пользователя, пришедшее от слоя представления.
type Intent struct {
	Action   Action   `json:"action"`
	Category Category `json:"category,omitempty"`
	Name     string   `json:"name,omitempty"`
	Text     string   `json:"text,omitempty"`
	Step     int      `json:"step,omitempty"`
}

// IsNavigation сообщает, двигает ли intent только указатель шага.
func (i Intent) IsNavigation() bool {
	switch i.Action {
	case ActionGoTo, ActionNext, ActionPrev:
		return true
	}
	return false
}

// ============================================================
// Stats
// ============================================================

type Rank string

const (
	RankNoviceNapper        Rank = "NOVICE NAPPER"
	RankWeekendWarrior      Rank = "WEEKEND WARRIOR"
	RankDecompositionExpert Rank = "DECOMPOSITION EXPERT"
	RankOneWithTheOoze      Rank = "ONE WITH THE OOZE"
)

type Stats struct {
	Comfort int  `json:"comfort"`
	Social  int  `json:"social"`
	Rot     int  `json:"rot"`
	Rank    Rank `json:"rank"`
}
