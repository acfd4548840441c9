package layout

import "bedrot-sim/internal/wizard/models"

// ============================================================
// Slot Tables
// ============================================================

var flavorSlots = []models.Slot{
	{Vertical: models.AnchorTop, VOffset: 15, Horizontal: models.AnchorLeft, HOffset: 12, Rotation: -6},
	{Vertical: models.AnchorTop, VOffset: 18, Horizontal: models.AnchorRight, HOffset: 12, Rotation: 6},
	{Vertical: models.AnchorTop, VOffset: 45, Horizontal: models.AnchorLeft, HOffset: 10, Rotation: -12},
}

var toppingSlots = []models.Slot{
	{Vertical: models.AnchorBottom, VOffset: 20, Horizontal: models.AnchorRight, HOffset: 15, Rotation: 12},
	{Vertical: models.AnchorBottom, VOffset: 25, Horizontal: models.AnchorLeft, HOffset: 20, Rotation: -12},
	{Vertical: models.AnchorBottom, VOffset: 10, Horizontal: models.AnchorLeft, HOffset: 45, Rotation: 3},
	{Vertical: models.AnchorTop, VOffset: 50, Horizontal: models.AnchorRight, HOffset: 10, Rotation: -6},
	{Vertical: models.AnchorTop, VOffset: 65, Horizontal: models.AnchorLeft, HOffset: 40, Rotation: 45},
}

// CenterSlot - место предмета комфорта и всего, у чего нет своей таблицы.
var CenterSlot = models.Slot{
	Vertical:   models.AnchorTop,
	VOffset:    42,
	Horizontal: models.AnchorLeft,
	HOffset:    50,
	Centered:   true,
}

var slotTables = map[models.Category][]models.Slot{
	models.CategoryFlavors:  flavorSlots,
	models.CategoryToppings: toppingSlots,
}

// ============================================================
// Allocator
// ============================================================

// SlotFor возвращает слот N-го элемента категории. Индексы сверх таблицы идут по кругу:
// (len+1)-й элемент занимает первый слот.
func SlotFor(category models.Category, index int) models.Slot {
	slots, ok := slotTables[category]
	if !ok || len(slots) == 0 {
		return CenterSlot
	}
	i := index % len(slots)
	if i < 0 {
		i += len(slots)
	}
	return slots[i]
}

// Capacity - число различных слотов категории (0 если таблицы нет).
func Capacity(category models.Category) int {
	return len(slotTables[category])
}
