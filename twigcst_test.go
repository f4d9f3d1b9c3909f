package twigcst_test

import (
	"testing"

	"github.com/andreyvit/diff"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twigcst/twigcst"
	"github.com/twigcst/twigcst/cst"
	"github.com/twigcst/twigcst/syntax"
)

func TestParseLosslessRoundTrip(t *testing.T) {
	fixtures := []string{
		`<div class="box">{{ user.name|upper }}</div>`,
		`{% for item in items %}<li>{{ item.label }}</li>{% endfor %}`,
		`{% if a.b[0] | length > 0 %}yes{% else %}no{% endif %}`,
		`<!-- ludtwig-ignore-file -->`,
		``,
	}
	for _, src := range fixtures {
		t.Run(src, func(t *testing.T) {
			result := twigcst.Parse(src)
			assert.Equal(t, src, result.Root.Text(), "Parse must losslessly reconstruct the source")
		})
	}
}

func TestParseCanonicalAccessorIndexFilterExample(t *testing.T) {
	result := twigcst.Parse(`{{ a.b[0] | length }}`)
	require.Empty(t, result.Diagnostics)

	v, ok := cst.CastTwigVar(result.Root.Children()[0])
	require.True(t, ok)
	expr := v.Expression()
	require.NotNil(t, expr)
	assert.Equal(t, syntax.TwigFilter, expr.Children()[0].Kind())
}

func TestParseDiagnosticsCompareStructurally(t *testing.T) {
	// Two independently malformed fixtures producing diagnostics that
	// differ only in their byte ranges: go-cmp's structural diff is far
	// more legible here than a bare reflect.DeepEqual failure would be.
	got := twigcst.Parse(`<div>`).Diagnostics
	want := twigcst.Parse(`<span>`).Diagnostics

	require.Len(t, got, 1)
	require.Len(t, want, 1)

	diffOpts := cmpopts.IgnoreFields(syntax.Diagnostic{}, "Range")
	if d := cmp.Diff(want, got, diffOpts); d != "" {
		t.Errorf("diagnostic shape should match once byte ranges are ignored (-want +got):\n%s", d)
	}
	assert.NotEqual(t, got[0].Range, want[0].Range)
}

func TestDumpIsStableAcrossIdenticalInput(t *testing.T) {
	const src = `<div class="a"><p>{{ x }}</p></div>`
	first := cst.Dump(twigcst.Parse(src).Root)
	second := cst.Dump(twigcst.Parse(src).Root)

	if first != second {
		t.Errorf("dump of identical input must match exactly:\n%s", diff.LineDiff(first, second))
	}
}

func TestDumpCatchesTreeShapeRegression(t *testing.T) {
	// A deliberately mismatched pair of dumps demonstrates the line-level
	// diff this module's tests rely on for golden-file-style comparisons:
	// a naive string mismatch would show two opaque indented blobs, while
	// andreyvit/diff highlights exactly the changed line.
	withAttr := cst.Dump(twigcst.Parse(`<div class="a"></div>`).Root)
	withoutAttr := cst.Dump(twigcst.Parse(`<div></div>`).Root)

	require.NotEqual(t, withAttr, withoutAttr)
	rendered := diff.LineDiff(withoutAttr, withAttr)
	assert.Contains(t, rendered, "HTML_ATTRIBUTE", "the diff must surface the added attribute node")
}

func TestParseNeverPanicsOnRawBytes(t *testing.T) {
	inputs := []string{
		"\xff\x00weird bytes<>",
		"{{ {% <",
		"{% block %}{% endblock %}",
	}
	for _, src := range inputs {
		src := src
		t.Run(src, func(t *testing.T) {
			assert.NotPanics(t, func() {
				result := twigcst.Parse(src)
				assert.Equal(t, src, result.Root.Text())
			})
		})
	}
}
