package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ClampsRating(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{4.5, 4.5},
		{5, 5},
		{7.2, 5},
	}
	for _, tt := range tests {
		m := Medicine{Rating: Rating{Average: tt.in, Count: -3}}
		m.Normalize()
		assert.Equal(t, tt.want, m.Rating.Average)
		assert.Zero(t, m.Rating.Count)
		assert.NotNil(t, m.Tags)
		assert.NotNil(t, m.SideEffects)
	}
}

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("Pain Relief"))
	assert.False(t, IsCategory("pain relief"))
	assert.False(t, IsCategory("All"))
}

func TestValidate(t *testing.T) {
	ok := Medicine{Name: "Paracetamol", Category: "Pain Relief"}
	assert.NoError(t, ok.Validate())

	assert.ErrorIs(t, (&Medicine{Name: "  ", Category: "Vitamins"}).Validate(), ErrNameRequired)
	assert.ErrorIs(t, (&Medicine{Name: "Zinc", Category: "Minerals"}).Validate(), ErrInvalidCategory)
	assert.ErrorIs(t, (&Medicine{Name: "Zinc", Category: "All"}).Validate(), ErrInvalidCategory)
}
