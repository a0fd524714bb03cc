package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIndian(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"+91-9876543210", true},
		{"+91 98765 43210", true},
		{"6123456789", true},
		{"5876543210", false},
		{"987654321", false},
		{"919876543210", false},
		{"+449876543210", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidIndian(tt.number))
		})
	}
}

func TestFormatIndian(t *testing.T) {
	assert.Equal(t, "+91-9876543210", FormatIndian("9876543210"))
	assert.Equal(t, "+91-9876543210", FormatIndian("+91 98765-43210"))
	assert.Equal(t, "+91-9876543210", FormatIndian("919876543210"))
	assert.Equal(t, "12345", FormatIndian("12345"))
}
