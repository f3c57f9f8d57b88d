package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractText_Plain(t *testing.T) {
	path := writeFile(t, "case.txt", "65 year old male with chest pain")
	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "65 year old male with chest pain", text)
}

func TestExtractText_HTML(t *testing.T) {
	page := `<html><head><style>body { color: red }</style>
<script>var x = 1;</script></head>
<body><h1>Discharge summary</h1><p>Chest pain and <b>dyspnea</b>.</p></body></html>`
	path := writeFile(t, "case.html", page)

	text, err := ExtractText(path)
	require.NoError(t, err)

	assert.Contains(t, text, "Discharge summary")
	assert.Contains(t, text, "Chest pain and")
	assert.Contains(t, text, "dyspnea")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "var x")
}

func TestExtractText_MissingFile(t *testing.T) {
	_, err := ExtractText(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
