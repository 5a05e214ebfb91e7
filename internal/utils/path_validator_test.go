package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEntityID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{id: "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b", wantErr: false},
		{id: "draft_01", wantErr: false},
		{id: "A", wantErr: false},
		{id: "", wantErr: true},
		{id: ".", wantErr: true},
		{id: "..", wantErr: true},
		{id: ".hidden", wantErr: true},
		{id: "-flag", wantErr: true},
		{id: "a/b", wantErr: true},
		{id: `a\b`, wantErr: true},
		{id: "with space", wantErr: true},
		{id: strings.Repeat("x", MaxEntityIDLength), wantErr: false},
		{id: strings.Repeat("x", MaxEntityIDLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateEntityID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "The Lighthouse", NormalizeName("  The \t Lighthouse\n"))
	assert.Equal(t, "", NormalizeName("   "))
	assert.Equal(t, "one", NormalizeName("one"))
}
