package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"bedrot-sim/internal/wizard/models"
)

var ErrUnknownAction = errors.New("store: unknown action")

// ============================================================
// Selection Store
// ============================================================

// Store - единственный источник правды для выбора и шага одной сессии.
// Одна блокировка на запись: читатели видят только полностью применённые изменения.
type Store struct {
	mu   sync.RWMutex
	sel  models.Selection
	step int
}

func New() *Store {
	return &Store{sel: models.NewSelection()}
}

// FromSelection собирает store из внешнего выбора после проверки инвариантов.
func FromSelection(sel models.Selection, step int) (*Store, error) {
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selection: %w", err)
	}
	s := &Store{sel: sel.Clone()}
	if s.sel.Flavors == nil {
		s.sel.Flavors = []string{}
	}
	if s.sel.Toppings == nil {
		s.sel.Toppings = []string{}
	}
	s.step = clampStep(step)
	return s, nil
}

func (s *Store) Snapshot() models.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.Clone()
}

func (s *Store) Step() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// View возвращает согласованную пару выбор+шаг под одной блокировкой.
func (s *Store) View() (models.Selection, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.Clone(), s.step
}

func (s *Store) Reset() models.Selection {
	return s.mutate(func(sel *models.Selection) {
		*sel = models.NewSelection()
		s.step = 0
	})
}

// ============================================================
// Mutations
// ============================================================

// SetSingle: для кровати - перезапись; для декора и сцены повторный выбор сбрасывает значение.
func (s *Store) SetSingle(category models.Category, name string) models.Selection {
	return s.mutate(func(sel *models.Selection) {
		switch category {
		case models.CategoryBase:
			sel.Base = name
		case models.CategoryDecoration:
			sel.Decoration = toggleSingle(sel.Decoration, name)
		case models.CategoryScene:
			sel.Scene = toggleSingle(sel.Scene, name)
		}
	})
}

// AddBounded добавляет гаджет, только если его ещё нет и есть место. Иначе - ничего.
func (s *Store) AddBounded(category models.Category, name string) models.Selection {
	return s.mutate(func(sel *models.Selection) {
		if category != models.CategoryFlavors {
			return
		}
		sel.Flavors = addBounded(sel.Flavors, name)
	})
}

func (s *Store) RemoveBounded(category models.Category, name string) models.Selection {
	return s.mutate(func(sel *models.Selection) {
		if category != models.CategoryFlavors {
			return
		}
		sel.Flavors = remove(sel.Flavors, name)
	})
}

// ToggleBounded - клик по карточке гаджета: убрать, если выбран, иначе AddBounded.
func (s *Store) ToggleBounded(category models.Category, name string) models.Selection {
	return s.mutate(func(sel *models.Selection) {
		if category != models.CategoryFlavors {
			return
		}
		if slices.Contains(sel.Flavors, name) {
			sel.Flavors = remove(sel.Flavors, name)
			return
		}
		sel.Flavors = addBounded(sel.Flavors, name)
	})
}

func (s *Store) ToggleSet(category models.Category, name string) models.Selection {
	return s.mutate(func(sel *models.Selection) {
		if category != models.CategoryToppings {
			return
		}
		if slices.Contains(sel.Toppings, name) {
			sel.Toppings = remove(sel.Toppings, name)
			return
		}
		sel.Toppings = append(sel.Toppings, name)
	})
}

// SetText перезаписывает сообщение. Лимит длины соблюдает тот, кто собирает текст.
func (s *Store) SetText(text string) models.Selection {
	return s.mutate(func(sel *models.Selection) {
		sel.Message = text
	})
}

// ============================================================
// Navigation
// ============================================================

func (s *Store) GoToStep(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = clampStep(index)
	return s.step
}

func (s *Store) AdvanceStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = clampStep(s.step + 1)
	return s.step
}

func (s *Store) RetreatStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = clampStep(s.step - 1)
	return s.step
}

// ============================================================
// Intents
// ============================================================

// Apply раскладывает intent по операциям store.
func (s *Store) Apply(intent models.Intent) (models.Selection, int, error) {
	switch intent.Action {
	case models.ActionSelect:
		switch intent.Category {
		case models.CategoryFlavors:
			s.ToggleBounded(intent.Category, intent.Name)
		case models.CategoryToppings:
			s.ToggleSet(intent.Category, intent.Name)
		case models.CategoryMessage:
			s.SetText(intent.Text)
		default:
			s.SetSingle(intent.Category, intent.Name)
		}
	case models.ActionAdd:
		s.AddBounded(intent.Category, intent.Name)
	case models.ActionRemove:
		s.RemoveBounded(intent.Category, intent.Name)
	case models.ActionToggle:
		if intent.Category == models.CategoryFlavors {
			s.ToggleBounded(intent.Category, intent.Name)
		} else {
			s.ToggleSet(intent.Category, intent.Name)
		}
	case models.ActionSetText:
		s.SetText(intent.Text)
	case models.ActionGoTo:
		s.GoToStep(intent.Step)
	case models.ActionNext:
		s.AdvanceStep()
	case models.ActionPrev:
		s.RetreatStep()
	case models.ActionReset:
		s.Reset()
	default:
		return models.Selection{}, 0, fmt.Errorf("%w: %q", ErrUnknownAction, intent.Action)
	}
	sel, step := s.View()
	return sel, step, nil
}

// ============================================================
// Helpers
// ============================================================

func (s *Store) mutate(fn func(sel *models.Selection)) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.sel)
	return s.sel.Clone()
}

func toggleSingle(current, name string) string {
	if current == name {
		return ""
	}
	return name
}

func addBounded(items []string, name string) []string {
	if len(items) >= models.MaxFlavors || slices.Contains(items, name) {
		return items
	}
	return append(items, name)
}

func remove(items []string, name string) []string {
	return slices.DeleteFunc(items, func(item string) bool { return item == name })
}

func clampStep(index int) int {
	if index < 0 {
		return 0
	}
	if index > models.FinalStep {
		return models.FinalStep
	}
	return index
}
