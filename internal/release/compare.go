package release

import (
	"fmt"
	"strings"
)

// illegalReplacer maps filesystem-illegal characters to their closest legal
// stand-ins, matching how names are expected to be written on disk.
// Question marks and asterisks have no stand-in and are dropped.
var illegalReplacer = strings.NewReplacer(
	"<", "[",
	">", "]",
	":", "-",
	`\`, "-",
	"/", "-",
	"|", "-",
	`"`, "'",
	"?", "",
	"*", "",
)

// SanitizeName applies the character-substitution table to s.
func SanitizeName(s string) string {
	return illegalReplacer.Replace(s)
}

// tagMatchesName reconciles a tag value against a field extracted from a
// display name.
//
// Date fields compare under partial-date equality; either side failing to
// parse is a non-match. With yearOnly set, only the tag's year is compared
// against the extracted text.
//
// Text fields compare after substitution. A failed comparison is retried
// with the tag's colons padded first, so "Title: Subtitle" may legitimately
// appear as "Title - Subtitle" in a name.
func tagMatchesName(tag, name string, kind FieldKind, yearOnly bool) bool {
	if kind == FieldDate {
		tagDate, ok := ParseDate(tag)
		if !ok {
			return false
		}
		if yearOnly {
			return fmt.Sprintf("%04d", tagDate.Year) == name
		}
		nameDate, ok := ParseDate(name)
		if !ok {
			return false
		}
		return tagDate.Equal(nameDate)
	}

	if SanitizeName(tag) == name {
		return true
	}
	return SanitizeName(strings.ReplaceAll(tag, ":", " :")) == name
}
