package rallylog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var separator = strings.Repeat("-", 50)

func renderString(t *testing.T, content string, opts RenderOptions) string {
	t.Helper()
	records, err := Decode([]byte(content))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Resolve(records), opts))
	return buf.String()
}

func TestRender(t *testing.T) {
	t.Run("FullEntry", func(t *testing.T) {
		got := renderString(t, `[{"round":1,"who":"assistant","prompt":"Hi","output":"Hello"}]`, RenderOptions{})
		want := "\n=== Round 1: [assistant] ===\nPrompt:\nHi\nOutput:\nHello\n" + separator + "\n"
		assert.Equal(t, want, got)
	})

	t.Run("EmptyEntry", func(t *testing.T) {
		got := renderString(t, `[{}]`, RenderOptions{})
		assert.Equal(t, "\n=== Round 0: [user] ===\n"+separator+"\n", got)
	})

	t.Run("OnlyOutput", func(t *testing.T) {
		got := renderString(t, `[{"who":"grok","output":"a\nb"}]`, RenderOptions{})
		assert.Equal(t, "\n=== Round 0: [grok] ===\nOutput:\na\nb\n"+separator+"\n", got)
		assert.NotContains(t, got, "Prompt:")
	})

	t.Run("EmptyLog", func(t *testing.T) {
		assert.Empty(t, renderString(t, `[]`, RenderOptions{}))
	})

	t.Run("SeparatorWidth", func(t *testing.T) {
		got := renderString(t, `[{}]`, RenderOptions{SeparatorWidth: 10})
		assert.True(t, strings.HasSuffix(got, "\n----------\n"))
	})
}

func TestRenderBlockCountAndOrder(t *testing.T) {
	content := `[
		{"round": 1, "who": "chatgpt", "output": "first"},
		{"round": 1, "who": "grok", "output": "second"},
		{"who": "chatgpt", "output": "third"}
	]`
	got := renderString(t, content, RenderOptions{})

	assert.Equal(t, 3, strings.Count(got, "=== Round "))
	assert.Equal(t, 3, strings.Count(got, separator+"\n"))

	first := strings.Index(got, "first")
	second := strings.Index(got, "second")
	third := strings.Index(got, "third")
	assert.True(t, first < second && second < third)
	assert.Contains(t, got, "=== Round 2: [chatgpt] ===")
}

func TestRenderIdempotent(t *testing.T) {
	path := writeLog(t, `[{"round":1,"who":"a","prompt":"p","output":"o"},{}]`)

	render := func() string {
		log, err := Load(path)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, log.Entries(), RenderOptions{}))
		return buf.String()
	}

	assert.Equal(t, render(), render())
}

func TestRenderStyled(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)
	entry := Entry{Round: "1", Who: "assistant", Prompt: "Hi", Output: "Hello"}

	plain := FormatEntry(entry, RenderOptions{})
	styled := FormatEntry(entry, RenderOptions{Styles: styles})

	assert.NotEqual(t, plain, styled)
	assert.Contains(t, styled, "\x1b[")
	assert.Contains(t, styled, "Round 1: [assistant]")
	assert.Contains(t, styled, "\nHi\n")
	assert.Contains(t, styled, "\nHello\n")
}
