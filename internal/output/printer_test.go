package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Success("starred %d", 42)
	p.Warning("cache is %s", "stale")
	p.Error("fetch failed")
	p.Header("Starred")

	assert.Equal(t, "[OK] starred 42\n\nStarred\n-------\n", out.String())
	assert.Equal(t, "[WARN] cache is stale\n[ERROR] fetch failed\n", errOut.String())
	assert.Equal(t, "x", p.Bold("x"))
	assert.Equal(t, "x", p.Highlight("x"))
}

func TestTableRender(t *testing.T) {
	var out bytes.Buffer
	table := NewTable(&out, []string{"ID", "TITLE"})
	table.AddRow("1", "Rust compiler internals")
	table.AddRow("2", "Show HN: hackerfeed")

	require.NoError(t, table.Render())
	assert.Equal(t, 2, table.Len())
	assert.Contains(t, out.String(), "Rust compiler internals")
	assert.Contains(t, out.String(), "Show HN: hackerfeed")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
