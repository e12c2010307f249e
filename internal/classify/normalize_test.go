package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "CHEGA", "chega"},
		{"strips accents", "saúde é importante", "saude e importante"},
		{"strips punctuation", "Olá, Mundo!", "ola mundo"},
		{"keeps hashtags", "vote #CHEGA!", "vote #chega"},
		{"keeps underscores", "pedro_nuno", "pedro_nuno"},
		{"keeps digits", "eleições 2025", "eleicoes 2025"},
		{"empty input", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.input))
		})
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	inputs := []string{
		"Economia e Saúde!",
		"#Legislativas2025",
		"André Ventura, outra vez?",
	}
	for _, input := range inputs {
		once := Canonical(input)
		assert.Equal(t, once, Canonical(once))
	}
}
