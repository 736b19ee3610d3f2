// Package markdown renders a plain-text transcript as structurally
// annotated markdown via line-level heuristics.
package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHeadingLen = 150

// Keyword classes decide the heading level. Terms carry the Portuguese
// originals of the source corpus alongside their English equivalents.
var (
	chapterKeywords = []string{"chapter", "capítulo", "title", "título"}
	sectionKeywords = []string{"section", "seção", "appendix", "apêndice", "item", "artigo"}
	otherKeywords   = []string{
		"introduction", "introdução",
		"conclusion", "conclusão",
		"summary", "sumário",
		"abstract", "resumo",
	}
)

var numberedItemRe = regexp.MustCompile(`^\d{1,2}[.)]`)

// ToMarkdown converts an extracted transcript into markdown. It is pure and
// deterministic: identical inputs always produce identical output. Empty
// input yields empty output.
//
// Each line is classified independently, in precedence order: blank, heading,
// list item, paragraph. A level-1 heading derived from the filename is
// prepended before the body.
func ToMarkdown(text, filename string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lines := []string{"# " + titleFromFilename(filename) + "\n"}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			lines = append(lines, "")
		case isHeading(line):
			lines = append(lines, strings.Repeat("#", headingLevel(line))+" "+line)
		case isBulletItem(line):
			lines = append(lines, "- "+strings.TrimLeft(line, "•-* "))
		case numberedItemRe.MatchString(line):
			lines = append(lines, numberedItem(line))
		default:
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// titleFromFilename turns "annual_report-2024.pdf" into "annual report 2024".
func titleFromFilename(filename string) string {
	title := strings.NewReplacer("_", " ", "-", " ").Replace(filename)
	if i := strings.LastIndex(title, "."); i > 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// isHeading reports whether a line qualifies as a heading candidate.
func isHeading(line string) bool {
	if utf8.RuneCountInString(line) >= maxHeadingLen {
		return false
	}
	if isAllUpper(line) || strings.HasSuffix(line, ":") {
		return true
	}
	// Lines carrying a list marker belong to the list rules: a bullet or
	// numbered item mentioning a keyword is still a list item.
	if isBulletItem(line) || numberedItemRe.MatchString(line) {
		return false
	}
	if hasKeyword(line, chapterKeywords) || hasKeyword(line, sectionKeywords) || hasKeyword(line, otherKeywords) {
		return true
	}
	// Short digit-led lines read as numbered section titles.
	if len(line) > 0 && line[0] >= '0' && line[0] <= '9' && len(strings.Fields(line)) <= 8 {
		return true
	}
	return false
}

// headingLevel maps a heading candidate to its markdown level by keyword class.
func headingLevel(line string) int {
	switch {
	case hasKeyword(line, chapterKeywords):
		return 1
	case hasKeyword(line, sectionKeywords):
		return 2
	default:
		return 3
	}
}

func isBulletItem(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
}

// numberedItem re-emits a numbered list line, preserving the numeric prefix.
// Content is derived by stripping the first ")"- or "."-delimited token; this
// truncates content containing either delimiter, matching the long-standing
// behavior downstream scoring depends on.
func numberedItem(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	num := line[:i]

	content := line
	if _, after, ok := strings.Cut(line, ")"); ok {
		content = after
	} else if _, after, ok := strings.Cut(line, "."); ok {
		content = after
	}
	return num + ". " + strings.TrimSpace(content)
}

// hasKeyword reports whether any whole word of the line is one of the
// keywords. Substring hits ("items", "entitled") do not count.
func hasKeyword(line string, keywords []string) bool {
	words := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		for _, kw := range keywords {
			if w == kw {
				return true
			}
		}
	}
	return false
}

// isAllUpper reports whether the line is entirely upper-case and contains at
// least one letter.
func isAllUpper(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
