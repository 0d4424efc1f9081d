package notebook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"string", `"a\nb"`, "a\nb", false},
		{"lines joined without separator", `["a\n", "b"]`, "a\nb", false},
		{"empty array", `[]`, "", false},
		{"null", `null`, "", false},
		{"number", `12`, "", true},
		{"object", `{"a": "b"}`, "", true},
		{"mixed array", `["a", 1]`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got Text
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestText_LineFormEqualsStringForm(t *testing.T) {
	t.Parallel()

	var lines, joined Text
	require.NoError(t, json.Unmarshal([]byte(`["x = 1\n", "y = 2\n", "print(x + y)"]`), &lines))
	require.NoError(t, json.Unmarshal([]byte(`"x = 1\ny = 2\nprint(x + y)"`), &joined))
	assert.Equal(t, joined, lines)
}

func TestLines_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var l Lines
	require.NoError(t, json.Unmarshal([]byte(`["line1", "line2"]`), &l))
	assert.Equal(t, "line1\nline2", l.String())

	require.NoError(t, json.Unmarshal([]byte(`"single"`), &l))
	assert.Equal(t, "single", l.String())
}

func TestMIMEBundle_KeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	var b MIMEBundle
	input := `{"text/plain": ["<Figure>"], "image/png": "AAAA", "application/json": {"a": 1}, "text/html": "<b>x</b>"}`
	require.NoError(t, json.Unmarshal([]byte(input), &b))

	require.Len(t, b, 3, "non-text payloads are dropped")
	assert.Equal(t, "text/plain", b[0].MIME)
	assert.Equal(t, "image/png", b[1].MIME)
	assert.Equal(t, "text/html", b[2].MIME)

	first, ok := b.First()
	assert.True(t, ok)
	assert.Equal(t, "<Figure>", first.Data)

	html, ok := b.Get("text/html")
	assert.True(t, ok)
	assert.Equal(t, "<b>x</b>", html)

	_, ok = b.Get("image/jpeg")
	assert.False(t, ok)
}

func TestMIMEBundle_NullAndInvalid(t *testing.T) {
	t.Parallel()

	var b MIMEBundle
	require.NoError(t, json.Unmarshal([]byte(`null`), &b))
	assert.Nil(t, b)

	_, ok := b.First()
	assert.False(t, ok)

	assert.Error(t, json.Unmarshal([]byte(`["image/png"]`), &b))
}
