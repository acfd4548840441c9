package assets

import (
	"strings"

	"bedrot-sim/internal/wizard/models"
)

// ============================================================
// Lookup Tables
// ============================================================

// imageAliases: отображаемое имя -> каноническое имя файла. Новые варианты добавляются сюда.
var imageAliases = map[string]string{
	"White Messy":   "white_messy",
	"Green Plaid":   "plaid_green",
	"Pink Ruffles":  "pink_ruffles",
	"Dark Grey":     "dark_grey",
	"Hogwarts":      "hogwarts",
	"Gryffindor":    "gryffindor_bed",
	"Summoning Bed": "summoning_bed",

	"MacBook":      "macbook",
	"Switch":       "switch",
	"Kindle":       "kindle",
	"Sleeping Cat": "cat_sleeping",
	"Key Chain":    "keychain",
	"Mischief Map": "mischief_map",
	"Crystal Ball": "crystal_ball",

	"Iced Coffee":    "iced_coffee",
	"Cup Noodles":    "cup_noodles",
	"Chips":          "chips_bag",
	"Diet Coke":      "diet_coke",
	"Pizza":          "pizza_box",
	"Energy Drink":   "energy_drink",
	"Chocolate Frog": "chocolate_frog",

	"Squishmallow": "squishmallow",
	"Tissues":      "tissues",
	"Headphones":   "headphones",
	"Eye Mask":     "eye_mask",
	"Mandrake Toy": "mandrake_toy",
	"Voodoo Doll":  "voodoo_doll",
	"Skull":        "skull",
}

var backgroundAliases = map[string]string{
	"Daylight":    "day",
	"Rainy Mood":  "rain",
	"3 AM Night":  "night",
	"Golden Hour": "golden",
	"Dusk Vibes":  "dusk",
	"Gryffindor":  "gryffindor",
	"Void":        "void",
}

const DefaultBackground = "/backgrounds/day.png"

var (
	sizeXS    = models.SizeClass{Mobile: 12, Desktop: 16}
	sizeS     = models.SizeClass{Mobile: 16, Desktop: 24}
	sizeSM    = models.SizeClass{Mobile: 20, Desktop: 28}
	sizeM     = models.SizeClass{Mobile: 24, Desktop: 32}
	sizeMW    = models.SizeClass{Mobile: 24, Desktop: 30}
	sizeML    = models.SizeClass{Mobile: 24, Desktop: 36}
	sizeL     = models.SizeClass{Mobile: 28, Desktop: 44}
	sizeXL    = models.SizeClass{Mobile: 36, Desktop: 56}
	sizeXXL   = models.SizeClass{Mobile: 40, Desktop: 60}
	SizeStage = models.SizeClass{Mobile: 90, Desktop: models.StageWidth / 4}
)

type sizeTable struct {
	special  map[string]models.SizeClass
	fallback models.SizeClass
}

var sizeTables = map[models.Category]sizeTable{
	models.CategoryFlavors: {
		special: map[string]models.SizeClass{
			"Switch":       sizeM,
			"Kindle":       sizeM,
			"Sleeping Cat": sizeL,
			"Key Chain":    sizeXS,
			"Blood Dagger": sizeS,
			"Mischief Map": sizeSM,
			"Crystal Ball": sizeMW,
		},
		fallback: sizeXXL,
	},
	models.CategoryToppings: {
		special: map[string]models.SizeClass{
			"Pizza": sizeML,
		},
		fallback: sizeS,
	},
	models.CategoryDecoration: {
		special: map[string]models.SizeClass{
			"Squishmallow": sizeXL,
			"Voodoo Doll":  sizeXL,
		},
		fallback: sizeSM,
	},
	models.CategoryBase: {
		fallback: SizeStage,
	},
}

// ============================================================
// Resolver
// ============================================================

// ResolveImage возвращает путь картинки или "" если имя пустое (рендер рисует заглушку).
func ResolveImage(category models.Category, name string) string {
	if name == "" {
		return ""
	}
	return "/ingredients/" + string(category) + "/" + fileFor(imageAliases, name) + ".png"
}

// ResolveBackground возвращает фон сцены; без выбора - дневной.
func ResolveBackground(scene string) string {
	if scene == "" {
		return DefaultBackground
	}
	return "/backgrounds/" + fileFor(backgroundAliases, scene) + ".png"
}

// ResolveSize - чистый поиск по таблице, без вычислений.
func ResolveSize(category models.Category, name string) models.SizeClass {
	table, ok := sizeTables[category]
	if !ok {
		return sizeSM
	}
	if size, ok := table.special[name]; ok {
		return size
	}
	return table.fallback
}

const unknownSlug = "unknown"

// Slug нормализует имя: нижний регистр, пробелы -> подчеркивания, остаются только [a-z0-9_-].
// Результат всегда один сегмент пути.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return unknownSlug
	}
	return b.String()
}

func fileFor(aliases map[string]string, name string) string {
	if file, ok := aliases[name]; ok {
		return file
	}
	return Slug(name)
}
