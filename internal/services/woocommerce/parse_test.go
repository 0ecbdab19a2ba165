package woocommerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"felmel/internal/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "0"},
		{"abc", "0"},
		{"12", "12"},
		{"12.50", "12.5"},
		{"$1,234.50", "1234.5"},
		{" 99 COP ", "99"},
		{"12.5.3", "12.5"},
		{"5.", "5"},
		{".75", "0.75"},
		{"1-2", "1"},
		{"-5", "0"},
		{"--5", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.raw).String())
		})
	}
}

func TestJoinCategories(t *testing.T) {
	assert.Equal(t, models.UncategorizedProduct, JoinCategories(nil))
	assert.Equal(t, models.UncategorizedProduct, JoinCategories([]Category{{Name: "  "}}))
	assert.Equal(t, "Anillos, Oro", JoinCategories([]Category{{Name: "Anillos"}, {Name: "Oro"}}))
}

func TestExtractMaterial(t *testing.T) {
	tests := []struct {
		name  string
		attrs []Attribute
		want  string
	}{
		{"none", nil, models.NoMaterial},
		{"no keyword", []Attribute{{Name: "Color", Options: []string{"Rojo"}}}, models.NoMaterial},
		{"material", []Attribute{{Name: "Material", Options: []string{"Oro 18k"}}}, "Oro 18k"},
		{"accented", []Attribute{{Name: "Composición", Options: []string{"Plata", "Cobre"}}}, "Plata, Cobre"},
		{"metal type", []Attribute{{Name: "Tipo de metal", Options: []string{"Oro"}}}, "Oro"},
		{"first match wins", []Attribute{
			{Name: "Talla", Options: []string{"7"}},
			{Name: "Metal", Options: []string{"Plata"}},
			{Name: "Material", Options: []string{"Oro"}},
		}, "Plata"},
		{"match without options", []Attribute{
			{Name: "Material"},
			{Name: "Metal", Options: []string{"Plata"}},
		}, models.NoMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMaterial(tt.attrs))
		})
	}
}

func TestFoldText(t *testing.T) {
	assert.Equal(t, "composicion", FoldText("Composición"))
	assert.Equal(t, "categoria", FoldText("CATEGORÍA"))
}

func TestParseTimestamp(t *testing.T) {
	got, ok := ParseTimestamp("2024-01-15T10:30:00", time.UTC)
	assert.True(t, ok)
	assert.True(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Equal(got))

	got, ok = ParseTimestamp("2024-01-15T10:30:00Z", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, 10, got.Hour())

	_, ok = ParseTimestamp("", time.UTC)
	assert.False(t, ok)

	_, ok = ParseTimestamp("yesterday", time.UTC)
	assert.False(t, ok)
}
