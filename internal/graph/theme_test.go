package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testThemes = ThemeTable{
	{Name: "politique", Keywords: []string{"réglementation", "parlement", "présidentiel", "démocratie", "constitution"}},
	{Name: "technologie", Keywords: []string{"auto", "généré", "données", "robotique", "automatique"}},
	{Name: "philosophie", Keywords: []string{"philosophique", "raisonnement", "pensée", "classique", "œuvre"}},
	{Name: "histoire", Keywords: []string{"époque", "siècle", "france", "développement", "essor"}},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{"single match", []string{"parlement", "maison"}, "politique"},
		{"majority wins", []string{"parlement", "données", "robotique"}, "technologie"},
		{"tie goes to first declared", []string{"pensée", "siècle"}, "philosophie"},
		{"case sensitive", []string{"Siècle", "FRANCE"}, Uncategorized},
		{"no match", []string{"chat", "noir"}, Uncategorized},
		{"empty community", nil, Uncategorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testThemes.Classify(tt.words))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	words := []string{"démocratie", "auto", "œuvre", "essor"}
	first := testThemes.Classify(words)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, testThemes.Classify(words))
	}
	assert.Equal(t, "politique", first)
}

func TestClassify_EmptyTable(t *testing.T) {
	assert.Equal(t, Uncategorized, ThemeTable(nil).Classify([]string{"parlement"}))
}
