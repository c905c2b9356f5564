package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draft struct {
	Title     string `json:"title"`
	Transient bool   `json:"transient"`
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, draft{Title: "Match Confirmed"}))
	assert.Equal(t, "{\n  \"title\": \"Match Confirmed\",\n  \"transient\": false\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"message":"error marshaling in iojson.Write"`)
}

func TestMarshalError(t *testing.T) {
	got := MarshalError(`bad "draft"`, map[string]any{"index": 2})
	assert.Contains(t, got, `"message": "bad \"draft\""`)
	assert.Contains(t, got, `"index": 2`)
}

func TestLineWriter(t *testing.T) {
	var out bytes.Buffer
	lw := NewLineWriter(&out)

	require.NoError(t, lw.Write(draft{Title: "a"}))
	require.NoError(t, lw.Write(draft{Title: "b", Transient: true}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		`{"title":"a","transient":false}`,
		`{"title":"b","transient":true}`,
	}, lines)
}

func TestFileReader(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "drafts.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"title":"x"}]`), 0o644))

		var fr FileReader[[]draft]
		fr.SetFile(path)

		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, []draft{{Title: "x"}}, got)
	})

	t.Run("stdin override", func(t *testing.T) {
		fr := FileReader[draft]{Stdin: strings.NewReader(`{"title":"y","transient":true}`)}

		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, draft{Title: "y", Transient: true}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		var fr FileReader[draft]
		fr.SetFile(filepath.Join(t.TempDir(), "missing.json"))

		_, err := fr.Read()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open file")
	})

	t.Run("bad json", func(t *testing.T) {
		fr := FileReader[draft]{Stdin: strings.NewReader(`{`)}

		_, err := fr.Read()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode JSON")
	})
}
