package sanitize_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/openshelf/internal/sanitize"
)

func TestClean_BoilerplateLines(t *testing.T) {
	in := "Contains: The Hobbit\nA classic adventure."
	got := sanitize.Clean(in)
	if got != "A classic adventure." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_BoilerplateCaseInsensitive(t *testing.T) {
	in := "ALSO PUBLISHED AS: The Other Title\nBody text."
	got := sanitize.Clean(in)
	if strings.Contains(got, "Other Title") {
		t.Errorf("boilerplate line survived: %q", got)
	}
}

func TestClean_SourceAnnotations(t *testing.T) {
	got := sanitize.Clean("A fine book (source: Wikipedia) indeed.")
	if strings.Contains(got, "source") {
		t.Errorf("sourcing annotation survived: %q", got)
	}
}

func TestClean_CitationMarkers(t *testing.T) {
	got := sanitize.Clean("A famous work[1] of fiction ([2]).")
	if strings.Contains(got, "[1]") || strings.Contains(got, "[2]") {
		t.Errorf("citation markers survived: %q", got)
	}
}

func TestClean_RefLinkKeepsText(t *testing.T) {
	got := sanitize.Clean("See [the sequel][12] for more.")
	if got != "See the sequel for more." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_InlineLinkKeepsText(t *testing.T) {
	got := sanitize.Clean("Read [this review](https://example.com/r?a=1) first.")
	if got != "Read this review first." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_ReferenceDefinitionLines(t *testing.T) {
	in := "Body text.\n\n[1]: https://example.com/ref"
	got := sanitize.Clean(in)
	if strings.Contains(got, "example.com") {
		t.Errorf("reference definition survived: %q", got)
	}
}

func TestClean_Emphasis(t *testing.T) {
	got := sanitize.Clean("A **bold** and *italic* claim.")
	if got != "A bold and italic claim." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_HorizontalRules(t *testing.T) {
	got := sanitize.Clean("Part one.\n----\nPart two.")
	if strings.Contains(got, "-") {
		t.Errorf("rule survived: %q", got)
	}
}

func TestClean_Headings(t *testing.T) {
	got := sanitize.Clean("## Synopsis\nThe plot.")
	if strings.Contains(got, "#") {
		t.Errorf("heading marker survived: %q", got)
	}
}

func TestClean_StackedHeadingMarkers(t *testing.T) {
	// One removal can expose another marker; the stage must run to a fixed
	// point.
	got := sanitize.Clean("## ## Synopsis\nThe plot.")
	if strings.Contains(got, "#") {
		t.Errorf("heading marker survived: %q", got)
	}
}

func TestClean_BulletLines(t *testing.T) {
	in := "Highlights:\n- dragons\n- gold\nThe end."
	got := sanitize.Clean(in)
	if strings.Contains(got, "dragons") || strings.Contains(got, "gold") {
		t.Errorf("bullet lines survived: %q", got)
	}
	if !strings.Contains(got, "The end.") {
		t.Errorf("non-bullet line lost: %q", got)
	}
}

func TestClean_ColonLines(t *testing.T) {
	in := "Before.\n: an orphaned definition\nAfter."
	got := sanitize.Clean(in)
	if strings.Contains(got, "orphaned") {
		t.Errorf("colon line survived: %q", got)
	}
}

func TestClean_ShoutedWords(t *testing.T) {
	got := sanitize.Clean("THIS novel is LOUD.")
	if got != "This novel is Loud." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_ShortCapsUntouched(t *testing.T) {
	got := sanitize.Clean("An OK read in the UK.")
	if got != "An OK read in the UK." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_EmptyPairs(t *testing.T) {
	got := sanitize.Clean("Leftover [] and () and (()) marks.")
	if strings.ContainsAny(got, "[]()") {
		t.Errorf("empty pairs survived: %q", got)
	}
}

// Removing an empty pair can fuse two short capital runs into a shouted
// one; the re-casing must still happen within a single Clean call.
func TestClean_PairRemovalRejoinsShoutedRun(t *testing.T) {
	cases := []struct{ in, want string }{
		{"AB[]C", "Abc"},
		{"TO()O loud", "Too loud"},
	}
	for _, c := range cases {
		if got := sanitize.Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClean_PunctuationOnlyLines(t *testing.T) {
	in := "First.\n*** !!! ***\nSecond."
	got := sanitize.Clean(in)
	for _, line := range strings.Split(got, "\n") {
		if line != "" && !strings.ContainsAny(line, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789") {
			t.Errorf("punctuation-only line survived: %q", line)
		}
	}
}

func TestClean_CollapsesBlankRuns(t *testing.T) {
	got := sanitize.Clean("One.\n\n\n\n\nTwo.")
	if got != "One.\n\nTwo." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_TrimsWhitespace(t *testing.T) {
	got := sanitize.Clean("  \n padded \n  ")
	if got != "padded" {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := sanitize.Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q", got)
	}
}

// Clean must be a fixed point for every input, markup-free text included.
func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text, nothing to do",
		"Contains: junk\n**BOLD** [link](http://x) [1]\n---\n- bullet\n: colon\n\n\n\nend",
		"(()) [[1]](u) *a**b* ## # deep",
		"A GREAT story[12] (from an old source) with [refs][3].\n\n[3]: http://ref",
		"___\n####### not a heading\nREADME text",
		"* stray star * and ** doubles **",
		"AB[]C",
		"TO()O loud AND[]CLEAR",
	}
	for _, in := range inputs {
		once := sanitize.Clean(in)
		twice := sanitize.Clean(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

// The sentinel strings pass through untouched; detail fetching relies on that.
func TestClean_SentinelsUnchanged(t *testing.T) {
	for _, s := range []string{
		"No description available.",
		"No author information available.",
	} {
		if got := sanitize.Clean(s); got != s {
			t.Errorf("Clean(%q) = %q", s, got)
		}
	}
}
