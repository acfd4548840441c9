package mapper

import (
	"bedrot-sim/internal/wizard/assets"
	"bedrot-sim/internal/wizard/layout"
	"bedrot-sim/internal/wizard/models"
	"bedrot-sim/internal/wizard/scoring"
)

// ============================================================
// Composer
// ============================================================

// Compose превращает снимок выбора в послойную сцену.
// Порядок слоёв: кровать < гаджеты < предмет комфорта < перекус < баннер.
func Compose(sel models.Selection, step int) models.Scene {
	scene := models.Scene{
		Width:      models.StageWidth,
		Height:     models.StageHeight,
		Background: assets.ResolveBackground(sel.Scene),
		Layers:     []models.Layer{},
		Step:       step,
		Final:      step >= models.FinalStep,
	}

	if sel.Base != "" {
		base := newLayer(models.CategoryBase, sel.Base, layout.CenterSlot, models.ZBase)
		scene.Base = &base
	} else {
		scene.Placeholder = true
	}

	for i, name := range sel.Flavors {
		scene.Layers = append(scene.Layers, newLayer(models.CategoryFlavors, name, layout.SlotFor(models.CategoryFlavors, i), models.ZFlavors))
	}

	if sel.Decoration != "" {
		scene.Layers = append(scene.Layers, newLayer(models.CategoryDecoration, sel.Decoration, layout.SlotFor(models.CategoryDecoration, 0), models.ZDecoration))
	}

	for i, name := range sel.Toppings {
		scene.Layers = append(scene.Layers, newLayer(models.CategoryToppings, name, layout.SlotFor(models.CategoryToppings, i), models.ZToppings))
	}

	if sel.Message != "" {
		scene.Banner = &models.Banner{Text: sel.Message, Z: models.ZBanner}
	}

	if scene.Final {
		stats := scoring.Compute(sel)
		scene.Stats = &stats
	}

	return scene
}

func newLayer(category models.Category, name string, slot models.Slot, z int) models.Layer {
	size := assets.ResolveSize(category, name)
	return models.Layer{
		Category:  category,
		Name:      name,
		Src:       assets.ResolveImage(category, name),
		Size:      size,
		SizeClass: size.Class(),
		Slot:      slot,
		SlotClass: slot.Class(),
		Z:         z,
	}
}
