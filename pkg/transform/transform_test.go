package transform

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/adam-huganir/varsub/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testTable() *data.Table {
	return data.NewTable(map[string]any{
		"var1":  "val1",
		"count": json.Number("42"),
		"ratio": 0.5,
		"on":    true,
		"off":   false,
		"zero":  json.Number("0"),
		"empty": "",
		"none":  nil,
		"var2": map[string]any{
			"key1": "val2",
			"obj":  map[string]any{"b": json.Number("1"), "a": "x"},
		},
		"list": []any{"a", json.Number("2")},
	})
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		want           string
		wantResolved   int
		wantUnresolved int
	}{
		{
			name:    "no tokens",
			content: "Hello World",
			want:    "Hello World",
		},
		{
			name:         "simple",
			content:      "Hello %var1%!",
			want:         "Hello val1!",
			wantResolved: 1,
		},
		{
			name:         "nested key",
			content:      "%var2.key1%",
			want:         "val2",
			wantResolved: 1,
		},
		{
			name:         "repeated",
			content:      "%var1%-%var1%-%var1%",
			want:         "val1-val1-val1",
			wantResolved: 3,
		},
		{
			name:         "adjacent",
			content:      "%var1%%var1%",
			want:         "val1val1",
			wantResolved: 2,
		},
		{
			name:           "missing kept verbatim",
			content:        "a %missing% b %var2.nope% c",
			want:           "a %missing% b %var2.nope% c",
			wantUnresolved: 2,
		},
		{
			name:           "falsy values kept verbatim",
			content:        "%off% %zero% %empty% %none%",
			want:           "%off% %zero% %empty% %none%",
			wantUnresolved: 4,
		},
		{
			name:         "scalars",
			content:      "%count% %ratio% %on%",
			want:         "42 0.5 true",
			wantResolved: 3,
		},
		{
			name:         "objects render as json",
			content:      "%var2.obj%",
			want:         `{"a":"x","b":1}`,
			wantResolved: 1,
		},
		{
			name:         "arrays render as json and index",
			content:      "%list% %list.0%",
			want:         `["a",2] a`,
			wantResolved: 2,
		},
		{
			name:         "mixed",
			content:      "%var1% %nope% %var2.key1%",
			want:         "val1 %nope% val2",
			wantResolved: 2, wantUnresolved: 1,
		},
		{
			name:    "characters outside the key class do not match",
			content: "100% sure, 50% off",
			want:    "100% sure, 50% off",
		},
		{
			name:           "unresolved token does not consume the next one",
			content:        "%nope%var1%",
			want:           "%nope%var1%",
			wantUnresolved: 1,
		},
	}

	tr, err := New("")
	require.NoError(t, err)
	table := testTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats := tr.Replace([]byte(tt.content), table)
			assert.Equal(t, tt.want, string(out))
			assert.Equal(t, Stats{Resolved: tt.wantResolved, Unresolved: tt.wantUnresolved}, stats)
		})
	}
}

func TestCustomPattern(t *testing.T) {
	tr, err := New(`\$\{([\w.]+)\}`)
	require.NoError(t, err)
	assert.Equal(t, `\$\{([\w.]+)\}`, tr.Pattern())

	out, stats := tr.Replace([]byte("${var1} %var1% ${var2.key1} ${gone}"), testTable())
	assert.Equal(t, "val1 %var1% val2 ${gone}", string(out))
	assert.Equal(t, Stats{Resolved: 2, Unresolved: 1}, stats)
}

func TestNewRejectsBadPatterns(t *testing.T) {
	_, err := New(`%(unclosed%`)
	assert.Error(t, err)

	_, err = New(`%[a-z]+%`)
	assert.ErrorContains(t, err, "capture group")
}

func TestTransformBinaryPassesThrough(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)

	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, '%', 'v', 'a', 'r', '1', '%', 0x00}
	res := tr.Transform(raw, testTable())
	assert.True(t, res.IsBinary)
	assert.Equal(t, raw, res.Output)
	assert.Equal(t, Stats{}, res.Stats)
}

func TestTransformText(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)

	res := tr.Transform([]byte("héllo %var1% ✓\n"), testTable())
	assert.False(t, res.IsBinary)
	assert.Equal(t, "héllo val1 ✓\n", string(res.Output))
	assert.Equal(t, Stats{Resolved: 1}, res.Stats)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "s", Stringify("s"))
	assert.Equal(t, "12", Stringify(json.Number("12")))
	assert.Equal(t, "1.25", Stringify(1.25))
	assert.Equal(t, "3", Stringify(float64(3)))
	assert.Equal(t, "7", Stringify(int64(7)))
	assert.Equal(t, "false", Stringify(false))
	assert.Equal(t, "null", Stringify(nil))
	assert.Equal(t, `{}`, Stringify(map[string]any{}))
}

// Text without a '%' can never contain a token, so it must come back untouched.
func TestReplaceIdentityProperty(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	table := testTable()

	rapid.Check(t, func(t *rapid.T) {
		content := rapid.StringMatching(`[^%]*`).Draw(t, "content")
		out, stats := tr.Replace([]byte(content), table)
		if string(out) != content {
			t.Fatalf("content changed: %q -> %q", content, out)
		}
		if stats != (Stats{}) {
			t.Fatalf("unexpected stats %+v", stats)
		}
	})
}

func TestReplaceResolvesEveryOccurrenceProperty(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`).Draw(t, "key")
		value := rapid.StringMatching(`[A-Za-z0-9 ]{1,12}`).Draw(t, "value")
		filler := rapid.StringMatching(`[^%]{0,10}`)
		n := rapid.IntRange(0, 6).Draw(t, "occurrences")

		var in, want strings.Builder
		for i := 0; i < n; i++ {
			f := filler.Draw(t, "filler")
			in.WriteString(f + "%" + key + "%")
			want.WriteString(f + value)
		}
		table := data.NewTable(map[string]any{key: value})

		out, stats := tr.Replace([]byte(in.String()), table)
		if string(out) != want.String() {
			t.Fatalf("got %q, want %q", out, want.String())
		}
		if stats.Resolved != n || stats.Unresolved != 0 {
			t.Fatalf("got %+v for %d occurrences", stats, n)
		}
	})
}

func TestReplaceUnresolvedKeptProperty(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	table := data.NewTable(map[string]any{"present": "x", "falsy": ""})

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.SampledFrom([]string{"absent", "falsy", "present.child", "a.b.c"}).Draw(t, "key")
		token := "%" + key + "%"
		out, stats := tr.Replace([]byte("<"+token+">"), table)
		if string(out) != "<"+token+">" {
			t.Fatalf("token %s was rewritten to %q", token, out)
		}
		if stats.Unresolved != 1 || stats.Resolved != 0 {
			t.Fatalf("got %+v", stats)
		}
	})
}
