package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São Paulo", "sao paulo"},
		{"sao   paulo", "sao paulo"},
		{"  CEARÁ ", "ceara"},
		{"Membro do Poder Judiciário e de Tribunal de Contas", "membro do poder judiciario e de tribunal de contas"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.in), "Key(%q)", tt.in)
	}
}

func TestResolve(t *testing.T) {
	labels := []string{"São Paulo", "Ceará", "Rio Grande do Sul"}

	got, ok := Resolve(labels, "sao paulo")
	assert.True(t, ok)
	assert.Equal(t, "São Paulo", got)

	got, ok = Resolve(labels, "  Ceara")
	assert.True(t, ok)
	assert.Equal(t, "Ceará", got)

	_, ok = Resolve(labels, "Paraná")
	assert.False(t, ok)
}
