// Package sanitize strips markup residue from free-text fields returned by
// the Open Library work and author endpoints. Descriptions there are
// user-contributed and arrive contaminated with markdown links, citation
// markers, reference blocks, and shouted ALL-CAPS passages.
//
// Cleanup runs as a fixed, ordered pipeline of total string stages,
// reapplied until the output stops changing. That makes Clean idempotent:
// Clean(Clean(s)) == Clean(s) for every input.
package sanitize

import (
	"regexp"
	"strings"
)

// A stage is one total string-to-string cleanup step.
type stage func(string) string

// pipeline lists the stages in the order they run. The order matters:
// later stages assume the earlier ones already ran (for example, empty
// bracket pairs are only removable once link syntax has been collapsed).
var pipeline = []stage{
	stripBoilerplateLines,
	stripSourceAnnotations,
	stripCitations,
	stripEmphasis,
	stripHorizontalRules,
	stripHeadings,
	stripBulletLines,
	stripColonLines,
	lowerShoutedWords,
	stripEmptyPairs,
	stripPunctuationLines,
	collapseBlankLines,
	strings.TrimSpace,
}

// Clean runs the cleanup pipeline to a fixed point. A single pass is not
// enough: one removal can expose a match for a stage that already ran
// (stacked heading markers, or "AB[]C" fusing into a shouted run once the
// empty pair is gone), so the whole pipeline repeats until the output
// stabilizes. Pure and deterministic; the empty string maps to itself.
func Clean(raw string) string {
	return fixpoint(runPipeline)(raw)
}

func runPipeline(s string) string {
	for _, st := range pipeline {
		s = st(s)
	}
	return s
}

// fixpoint reapplies f until the output stops changing. Terminates because
// no stage adds characters or uppercases anything.
func fixpoint(f stage) stage {
	return func(s string) string {
		for {
			next := f(s)
			if next == s {
				return s
			}
			s = next
		}
	}
}

var (
	boilerplateRe = regexp.MustCompile(`(?im)^(contains|also contained in|also published as|contents|includes)[:\s].*$`)
	sourceParenRe = regexp.MustCompile(`(?i)\([^)]*source[^)]*\)`)

	citationParenRe = regexp.MustCompile(`\(\[[^\]]*\]\)`)
	refLinkRe       = regexp.MustCompile(`\[([^\]]+)\]\[\d+\]`)
	inlineLinkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	refDefRe        = regexp.MustCompile(`\[\d+\]:[^\n]*`)
	citationRe      = regexp.MustCompile(`\[\d+\]`)

	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)

	ruleRe      = regexp.MustCompile(`[-_]{2,}`)
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bulletRe    = regexp.MustCompile(`(?m)^\s*-\s+.*$`)
	colonLineRe = regexp.MustCompile(`(?m)^\s*:.*$`)

	shoutedRe   = regexp.MustCompile(`\b[A-Z]{3,}\b`)
	punctLineRe = regexp.MustCompile(`(?m)^[^a-zA-Z0-9\n]+$`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
)

// stripBoilerplateLines removes explanatory preamble lines such as
// "Contains: ..." or "Also published as: ..." through end of line.
func stripBoilerplateLines(s string) string {
	return boilerplateRe.ReplaceAllString(s, "")
}

// stripSourceAnnotations removes parenthetical sourcing notes like
// "(source: Wikipedia)".
func stripSourceAnnotations(s string) string {
	return sourceParenRe.ReplaceAllString(s, "")
}

// stripCitations removes bracketed citation markers and collapses markdown
// link syntax to its visible text.
func stripCitations(s string) string {
	s = citationParenRe.ReplaceAllString(s, "")
	s = refLinkRe.ReplaceAllString(s, "$1")
	s = inlineLinkRe.ReplaceAllString(s, "$1")
	s = refDefRe.ReplaceAllString(s, "")
	s = citationRe.ReplaceAllString(s, "")
	return s
}

// stripEmphasis collapses **bold** and *italic* wrappers to their inner text.
func stripEmphasis(s string) string {
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	return s
}

// stripHorizontalRules removes runs of 2+ dashes or underscores.
func stripHorizontalRules(s string) string {
	return ruleRe.ReplaceAllString(s, "")
}

// stripHeadings removes leading heading markers ("## ").
func stripHeadings(s string) string {
	return headingRe.ReplaceAllString(s, "")
}

// stripBulletLines removes whole bullet-list lines.
func stripBulletLines(s string) string {
	return bulletRe.ReplaceAllString(s, "")
}

// stripColonLines removes lines that are solely a colon or begin with one.
func stripColonLines(s string) string {
	return colonLineRe.ReplaceAllString(s, "")
}

// lowerShoutedWords re-cases runs of 3+ capitals so SHOUTED text reads as
// Shouted. The first letter stays uppercase.
func lowerShoutedWords(s string) string {
	return shoutedRe.ReplaceAllStringFunc(s, func(w string) string {
		return w[:1] + strings.ToLower(w[1:])
	})
}

// stripEmptyPairs removes leftover "[]" and "()" pairs.
func stripEmptyPairs(s string) string {
	s = strings.ReplaceAll(s, "[]", "")
	s = strings.ReplaceAll(s, "()", "")
	return s
}

// stripPunctuationLines empties lines composed entirely of non-alphanumeric
// characters.
func stripPunctuationLines(s string) string {
	return punctLineRe.ReplaceAllString(s, "")
}

// collapseBlankLines reduces runs of 3+ newlines to exactly two.
func collapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}
