package bibtex

import (
	"regexp"
)

// braceValue matches a braced field value with up to one level of nested
// braces, which covers everything the registry export emits.
const braceValue = `\{(?:[^{}]|\{[^{}]*\})*\}`

var (
	// abstractWithComma matches an abstract field together with the comma
	// separating it from the preceding field.
	abstractWithComma = regexp.MustCompile(`(?is),\s*abstract\s*=\s*` + braceValue)

	// abstractLeading matches an abstract field at the head of the field
	// list, together with its own trailing comma.
	abstractLeading = regexp.MustCompile(`(?is)\babstract\s*=\s*` + braceValue + `\s*,?`)

	// titleField captures the title assignment and its braced value.
	// \b keeps it from matching inside "booktitle".
	titleField = regexp.MustCompile(`(?is)\b(title\s*=\s*)` + `\{((?:[^{}]|\{[^{}]*\})*)\}`)
)

// Sanitize enforces the output invariants on a registry-exported entry:
// the abstract field is stripped entirely, and the title value is wrapped
// in double braces when the export used only single ones. Everything else
// in the entry is passed through untouched.
func Sanitize(entry string) string {
	entry = StripAbstract(entry)
	return braceTitle(entry)
}

// StripAbstract removes any abstract field from an entry, handling brace
// nesting inside the abstract up to one level. No separator is left
// dangling where the field used to be.
func StripAbstract(entry string) string {
	entry = abstractWithComma.ReplaceAllString(entry, "")
	return abstractLeading.ReplaceAllString(entry, "")
}

// braceTitle wraps the title value in double braces unless it already has
// them. Existing double braces are detected from the first and last
// characters of the value only; nothing inside is inspected.
func braceTitle(entry string) string {
	return titleField.ReplaceAllStringFunc(entry, func(m string) string {
		sub := titleField.FindStringSubmatch(m)
		val := sub[2]
		if len(val) >= 2 && val[0] == '{' && val[len(val)-1] == '}' {
			return m
		}
		return sub[1] + "{{" + val + "}}"
	})
}
