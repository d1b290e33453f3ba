package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr error
	}{
		{
			name:    "valid gel",
			item:    Item{Name: "Energy Gel", Category: CategoryGel, Carbs: 25},
			wantErr: nil,
		},
		{
			name:    "missing name",
			item:    Item{Category: CategoryGel},
			wantErr: ErrItemNameRequired,
		},
		{
			name:    "negative carbs",
			item:    Item{Name: "Broken", Category: CategoryGel, Carbs: -1},
			wantErr: ErrNegativeYield,
		},
		{
			name:    "negative sodium",
			item:    Item{Name: "Broken", Category: CategoryBar, Sodium: -10},
			wantErr: ErrNegativeYield,
		},
		{
			name:    "unknown category",
			item:    Item{Name: "Mystery", Category: Category("snack")},
			wantErr: ErrUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClassifierNamePatternsWin(t *testing.T) {
	cls := NewClassifier()

	tests := []struct {
		name string
		item Item
		want Category
	}{
		{
			name: "mix filed under bars is a drink mix",
			item: Item{Name: "Endurance Mix", Category: CategoryBar},
			want: CategoryDrinkMix,
		},
		{
			name: "gel filed under other is a gel",
			item: Item{Name: "Citrus Gel", Category: CategoryOther},
			want: CategoryGel,
		},
		{
			name: "plain water by name",
			item: Item{Name: "Water", Category: CategoryOther, Fluid: 500},
			want: CategoryWater,
		},
		{
			name: "ready-to-drink electrolyte acts as drink mix",
			item: Item{Name: "Salty Bottle", Category: CategoryElectrolyte, Fluid: 500},
			want: CategoryDrinkMix,
		},
		{
			name: "stored category holds otherwise",
			item: Item{Name: "Oat Square", Category: CategoryBar},
			want: CategoryBar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cls.Classify(tt.item))
		})
	}
}

func TestClassifierCachesByName(t *testing.T) {
	cls := NewClassifier()

	first := Item{Name: "Endurance Mix", Category: CategoryBar}
	assert.Equal(t, CategoryDrinkMix, cls.Classify(first))

	// Same name resolves from the cache even with different fields
	second := Item{Name: "Endurance Mix", Category: CategoryGel}
	assert.Equal(t, CategoryDrinkMix, cls.Classify(second))
}

func TestEffectiveFluid(t *testing.T) {
	cls := NewClassifier()

	t.Run("dry drink mix gets reconstitution volume", func(t *testing.T) {
		it := Item{Name: "Powder Mix", Category: CategoryDrinkMix, Carbs: 45, Fluid: 0}
		assert.Equal(t, ReconstitutionVolumeML, EffectiveFluid(it, cls.Classify(it)))
	})

	t.Run("bottled drink keeps its own volume", func(t *testing.T) {
		it := Item{Name: "Ready Drink", Category: CategoryDrinkMix, Fluid: 330}
		assert.Equal(t, 330.0, EffectiveFluid(it, cls.Classify(it)))
	})

	t.Run("gel contributes no fluid", func(t *testing.T) {
		it := Item{Name: "Energy Gel", Category: CategoryGel, Carbs: 25}
		assert.Equal(t, 0.0, EffectiveFluid(it, cls.Classify(it)))
	})

	t.Run("high-sodium electrolyte powder reconstitutes", func(t *testing.T) {
		it := Item{Name: "Salty Tabs", Category: CategoryElectrolyte, Sodium: 300, Fluid: 0}
		assert.Equal(t, ReconstitutionVolumeML, EffectiveFluid(it, cls.Classify(it)))
	})

	t.Run("low-yield electrolyte capsule stays dry", func(t *testing.T) {
		it := Item{Name: "Tiny Capsule", Category: CategoryElectrolyte, Sodium: 100, Fluid: 0}
		assert.Equal(t, 0.0, EffectiveFluid(it, cls.Classify(it)))
	})
}

func TestIsLiquid(t *testing.T) {
	assert.True(t, IsLiquid(CategoryDrinkMix))
	assert.True(t, IsLiquid(CategoryWater))
	assert.False(t, IsLiquid(CategoryGel))
	assert.False(t, IsLiquid(CategoryRealFood))
}
