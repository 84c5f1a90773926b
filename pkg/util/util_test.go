package util

import (
	"testing"

	"github.com/adam-huganir/varsub/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestDedent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "tabs",
			input: "\n\t\tkey: 1\n\t\tnested:\n\t\t  a: b",
			want:  "key: 1\nnested:\n  a: b",
		},
		{
			name:  "blank lines kept",
			input: "\n    a\n\n    b\n",
			want:  "a\n\nb\n",
		},
		{
			name:  "no indentation",
			input: "a\nb",
			want:  "a\nb",
		},
		{
			name:    "short line",
			input:   "\n    a\n  b",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dedent(tt.input)
			if tt.wantErr {
				var dedentErr *types.DedentError
				assert.ErrorAs(t, err, &dedentErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustDedentPanics(t *testing.T) {
	assert.Panics(t, func() { MustDedent("\n    a\n  b") })
}
