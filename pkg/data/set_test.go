package data

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSetString(t *testing.T) {
	tests := []struct {
		input     string
		wantPath  string
		wantValue any
		wantErr   bool
	}{
		{input: "name=varsub", wantPath: "$.name", wantValue: "varsub"},
		{input: ".name=1", wantPath: "$.name", wantValue: float64(1)},
		{input: "$.a.b=true", wantPath: "$.a.b", wantValue: true},
		{input: `$["a b"]={"x":1}`, wantPath: `$["a b"]`, wantValue: map[string]any{"x": float64(1)}},
		{input: "url=http://x?a=b", wantPath: "$.url", wantValue: "http://x?a=b"},
		{input: "empty=", wantPath: "$.empty", wantValue: ""},
		{input: "novalue", wantErr: true},
		{input: "=value", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, v, err := SplitSetString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, p)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestParseSetArgs(t *testing.T) {
	logger := zerolog.Nop()
	tests := []struct {
		name    string
		args    []string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "none",
			args: nil,
			want: nil,
		},
		{
			name: "top level and nested",
			args: []string{"var1=val1", "var2.key1=val2", "var2.key2=3"},
			want: map[string]any{
				"var1": "val1",
				"var2": map[string]any{"key1": "val2", "key2": float64(3)},
			},
		},
		{
			name: "arrays grow by append",
			args: []string{"list[0]=a", "list[1].name=b"},
			want: map[string]any{
				"list": []any{"a", map[string]any{"name": "b"}},
			},
		},
		{
			name:    "array gap",
			args:    []string{"list[1]=a"},
			wantErr: true,
		},
		{
			name:    "not singular",
			args:    []string{"$.a[*]=1"},
			wantErr: true,
		},
		{
			name:    "scalar in the way",
			args:    []string{"a=1", "a.b=2"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSetArgs(tt.args, &logger)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
