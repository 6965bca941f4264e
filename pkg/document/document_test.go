package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/shared-api/pkg/document"
)

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"46131287570", true},
		{"461.312.875-70", true},
		{" 461.312.875-70 ", true},
		{"46131287571", false},
		{"11111111111", false},
		{"00000000000", false},
		{"4613128757", false},
		{"4613128757a", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, document.IsValidCPF(tc.in))
		})
	}
}

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, "461.312.875-70", document.FormatCPF("46131287570"))
	assert.Equal(t, "123", document.FormatCPF("123"), "inválido se devuelve igual")
}

func TestIsValidCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"82876360000116", true},
		{"82.876.360/0001-16", true},
		{"82876360000117", false},
		{"8287636000011", false},
		{"82.876.360/0001-1x", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, document.IsValidCNPJ(tc.in))
		})
	}
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "82.876.360/0001-16", document.FormatCNPJ("82876360000116"))
	assert.Equal(t, "82.876.360/0001-16", document.FormatCNPJ("82.876.360/0001-16"))
	assert.Equal(t, "abc", document.FormatCNPJ("abc"))
}
