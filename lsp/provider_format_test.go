package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/xjs/config"
	"github.com/simon-lentz/xjs/lsp"
	"github.com/simon-lentz/xjs/lsp/testutil"
)

func TestFormatting_JSON_Compact_ToPretty(t *testing.T) {
	t.Parallel()

	s := lsp.NewServer(nil, lsp.Config{})
	h := testutil.NewHarness(t, s.Handler(), t.TempDir())
	require.NoError(t, h.Initialize())

	content := `{"a":1,"b":2}`
	require.NoError(t, h.OpenDocument("doc.json", content))

	edits, err := h.Formatting("doc.json")
	require.NoError(t, err)
	testutil.AssertFormattingApplied(t, edits)

	result := testutil.ApplyEdits(content, edits, "utf-16")
	assert.Contains(t, result, "\n")
	assert.Contains(t, result, `"a": 1`)
}

func TestFormatting_JSON_AlreadyPretty_NoEdits(t *testing.T) {
	t.Parallel()

	s := lsp.NewServer(nil, lsp.Config{})
	h := testutil.NewHarness(t, s.Handler(), t.TempDir())
	require.NoError(t, h.Initialize())

	content := "{\n  \"a\": 1\n}"
	require.NoError(t, h.OpenDocument("doc.json", content))

	edits, err := h.Formatting("doc.json")
	require.NoError(t, err)
	testutil.AssertNoFormattingNeeded(t, edits)
}

func TestFormatting_XJS_NormalizesTrailingCommaAndSpacing(t *testing.T) {
	t.Parallel()

	s := lsp.NewServer(nil, lsp.Config{})
	h := testutil.NewHarness(t, s.Handler(), t.TempDir())
	require.NoError(t, h.Initialize())

	content := "a:1,b:2,"
	require.NoError(t, h.OpenDocument("doc.xjs", content))

	edits, err := h.Formatting("doc.xjs")
	require.NoError(t, err)
	testutil.AssertFormattingApplied(t, edits)
}

func TestFormatting_SyntaxError_SkipsFormatting(t *testing.T) {
	t.Parallel()

	s := lsp.NewServer(nil, lsp.Config{})
	h := testutil.NewHarness(t, s.Handler(), t.TempDir())
	require.NoError(t, h.Initialize())

	content := `{"a": }`
	require.NoError(t, h.OpenDocument("broken.json", content))

	edits, err := h.Formatting("broken.json")
	require.NoError(t, err)
	testutil.AssertNoFormattingNeeded(t, edits)
}

func TestFormatting_JSON_RespectsConfiguredIndent(t *testing.T) {
	t.Parallel()

	cfg := lsp.Config{FormatConfig: config.Config{Indent: "    "}}
	s := lsp.NewServer(nil, cfg)
	h := testutil.NewHarness(t, s.Handler(), t.TempDir())
	require.NoError(t, h.Initialize())

	content := `{"a":1}`
	require.NoError(t, h.OpenDocument("doc.json", content))

	edits, err := h.Formatting("doc.json")
	require.NoError(t, err)
	testutil.AssertFormattingApplied(t, edits)

	result := testutil.ApplyEdits(content, edits, "utf-16")
	assert.Contains(t, result, "    \"a\": 1")
}

func TestFormatting_XJS_RespectsQuoteOmissionOverride(t *testing.T) {
	t.Parallel()

	no := false
	cfg := lsp.Config{FormatConfig: config.Config{QuoteOmission: &no}}
	s := lsp.NewServer(nil, cfg)
	h := testutil.NewHarness(t, s.Handler(), t.TempDir())
	require.NoError(t, h.Initialize())

	content := "a: 1"
	require.NoError(t, h.OpenDocument("doc.xjs", content))

	edits, err := h.Formatting("doc.xjs")
	require.NoError(t, err)
	testutil.AssertFormattingApplied(t, edits)

	result := testutil.ApplyEdits(content, edits, "utf-16")
	assert.Contains(t, result, `"a"`)
}

func TestFormatting_UnopenedDocument_ReturnsNil(t *testing.T) {
	t.Parallel()

	s := lsp.NewServer(nil, lsp.Config{})
	h := testutil.NewHarness(t, s.Handler(), t.TempDir())
	require.NoError(t, h.Initialize())

	edits, err := h.Formatting("never-opened.json")
	require.NoError(t, err)
	assert.Empty(t, edits)
}
