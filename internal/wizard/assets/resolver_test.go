package assets

import (
	"regexp"
	"strings"
	"testing"

	"bedrot-sim/internal/wizard/models"

	"github.com/stretchr/testify/assert"
)

var itemPath = regexp.MustCompile(`^/ingredients/(base|flavors|toppings|decorations)/[a-z0-9_-]+\.png$`)

var backgroundPath = regexp.MustCompile(`^/backgrounds/[a-z0-9_-]+\.png$`)

func TestResolveImageAliases(t *testing.T) {
	tests := []struct {
		category models.Category
		name     string
		want     string
	}{
		{models.CategoryBase, "White Messy", "/ingredients/base/white_messy.png"},
		{models.CategoryBase, "Green Plaid", "/ingredients/base/plaid_green.png"},
		{models.CategoryFlavors, "Sleeping Cat", "/ingredients/flavors/cat_sleeping.png"},
		{models.CategoryFlavors, "Key Chain", "/ingredients/flavors/keychain.png"},
		{models.CategoryToppings, "Chips", "/ingredients/toppings/chips_bag.png"},
		{models.CategoryToppings, "Pizza", "/ingredients/toppings/pizza_box.png"},
		{models.CategoryDecoration, "Eye Mask", "/ingredients/decorations/eye_mask.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveImage(tt.category, tt.name))
		})
	}
}

func TestResolveImageFallsBackToSlug(t *testing.T) {
	assert.Equal(t, "/ingredients/flavors/blood_dagger.png", ResolveImage(models.CategoryFlavors, "Blood Dagger"))
	assert.Equal(t, "/ingredients/toppings/hot_pocket_deluxe.png", ResolveImage(models.CategoryToppings, "Hot Pocket DELUXE"))
}

func TestResolveImageEmptyName(t *testing.T) {
	assert.Empty(t, ResolveImage(models.CategoryBase, ""))
}

func TestResolveImageIsTotal(t *testing.T) {
	names := []string{"a", "MacBook", "Some Unknown Thing", "  padded  ", "ÜBER Snack", "3 AM", "x y z"}
	categories := []models.Category{models.CategoryBase, models.CategoryFlavors, models.CategoryToppings, models.CategoryDecoration}
	for _, c := range categories {
		for _, name := range names {
			got := ResolveImage(c, name)
			assert.Regexp(t, itemPath, got, "category=%s name=%q", c, name)
			assert.Equal(t, got, ResolveImage(c, name), "resolution must be deterministic")
		}
	}
}

func TestResolveBackground(t *testing.T) {
	assert.Equal(t, DefaultBackground, ResolveBackground(""))
	assert.Equal(t, "/backgrounds/night.png", ResolveBackground("3 AM Night"))
	assert.Equal(t, "/backgrounds/gryffindor.png", ResolveBackground("Gryffindor"))
	assert.Equal(t, "/backgrounds/neon_haze.png", ResolveBackground("Neon Haze"))
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		category models.Category
		name     string
		want     string
	}{
		{models.CategoryFlavors, "Switch", "w-24 md:w-32"},
		{models.CategoryFlavors, "Sleeping Cat", "w-28 md:w-44"},
		{models.CategoryFlavors, "Key Chain", "w-12 md:w-16"},
		{models.CategoryFlavors, "MacBook", "w-40 md:w-60"},
		{models.CategoryToppings, "Pizza", "w-24 md:w-36"},
		{models.CategoryToppings, "Chips", "w-16 md:w-24"},
		{models.CategoryDecoration, "Squishmallow", "w-36 md:w-56"},
		{models.CategoryDecoration, "Voodoo Doll", "w-36 md:w-56"},
		{models.CategoryDecoration, "Tissues", "w-20 md:w-28"},
		{models.CategoryScene, "Void", "w-20 md:w-28"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSize(tt.category, tt.name).Class())
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "dark_grey", Slug("Dark Grey"))
	assert.Equal(t, "golden__hour", Slug("Golden  Hour"))
	assert.Equal(t, "secret", Slug("../../../secret"))
	assert.Equal(t, "abc", Slug(`a/b\c`))
	assert.Equal(t, "unknown", Slug(".."))
	assert.Equal(t, "unknown", Slug("😴"))
}

func TestResolveStaysInNamespace(t *testing.T) {
	names := []string{"../../../secret", "..", "/etc/passwd", `..\..\win`, "a/../b", "x.png", "%2e%2e"}
	categories := []models.Category{models.CategoryBase, models.CategoryFlavors, models.CategoryToppings, models.CategoryDecoration}
	for _, name := range names {
		for _, c := range categories {
			got := ResolveImage(c, name)
			assert.Regexp(t, itemPath, got, "category=%s name=%q", c, name)
			assert.NotContains(t, got, "..")
			assert.Equal(t, 3, strings.Count(got, "/"), "extra path segments in %q", got)
		}
		got := ResolveBackground(name)
		assert.Regexp(t, backgroundPath, got, "scene=%q", name)
		assert.NotContains(t, got, "..")
	}
}
