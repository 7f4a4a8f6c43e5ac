package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/threadtree/internal/thread"
)

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("thread.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("THREAD.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("thread.json"))
	assert.Equal(t, FormatJSON, FormatForPath("-"))
}

func TestDecodeJSONForest(t *testing.T) {
	in := `[
		{"id": 1, "author": "A", "time": "t1", "text": "hi", "children": [
			{"id": "x2", "author": "B", "time": "t2", "text": "", "children": []}
		]},
		{"author": "C", "time": "t3", "text": "solo"}
	]`

	forest, err := Decode(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []thread.Comment{
		{ID: "1", Author: "A", Time: "t1", Text: "hi", Children: []thread.Comment{
			{ID: "x2", Author: "B", Time: "t2", Text: ""},
		}},
		{Author: "C", Time: "t3", Text: "solo"},
	}, forest)
}

func TestDecodeJSONSingleRoot(t *testing.T) {
	forest, err := Decode(strings.NewReader(`{"id": 1234567, "author": "A", "time": "t1", "text": "hi"}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "1234567", forest[0].ID)
}

func TestDecodeEmpty(t *testing.T) {
	forest, err := Decode(strings.NewReader("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, forest)

	forest, err = Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, forest)
}

func TestDecodeYAML(t *testing.T) {
	in := `
- id: 1
  author: A
  time: "t1"
  text: |
    hello **there**
  children:
    - author: B
      time: t2
      text: ""
`
	forest, err := Decode(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "1", forest[0].ID)
	assert.Equal(t, "hello **there**\n", forest[0].Text)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "B", forest[0].Children[0].Author)

	single, err := Decode(strings.NewReader("author: A\ntime: t1\ntext: hi\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "hi", single[0].Text)
}

func TestDecodeMissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"root author",
			`[{"time": "t1", "text": "hi"}]`,
			`comment[0]: missing "author"`,
		},
		{
			"nested text",
			`[{"author": "A", "time": "t1", "text": "", "children": [
				{"author": "B", "time": "t2", "text": "ok"},
				{"author": "C", "time": "t3"}
			]}]`,
			`comment[0].children[1]: missing "text"`,
		},
		{
			"second root time",
			`[{"author": "A", "time": "t1", "text": ""}, {"author": "B", "text": ""}]`,
			`comment[1]: missing "time"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in), FormatJSON)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"author": `), FormatJSON)
	assert.ErrorContains(t, err, "decoding JSON")

	_, err = Decode(strings.NewReader("author: [unclosed"), FormatYAML)
	assert.ErrorContains(t, err, "decoding YAML")

	_, err = Decode(strings.NewReader("[]"), Format("xml"))
	assert.ErrorContains(t, err, "unknown comment format")
}
