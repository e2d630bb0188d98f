package release

import (
	"regexp"
	"strings"
)

// FieldKind selects the comparison rule for a name field.
type FieldKind int

const (
	// FieldText compares under the character-substitution rules.
	FieldText FieldKind = iota
	// FieldDate compares under the partial-date equality rules.
	FieldDate
)

// Field is one named capture in a naming pattern.
type Field struct {
	Name     string
	Kind     FieldKind
	Optional bool
}

// Pattern is the structured naming convention for one tree level. The
// regular expression and the human-readable rendering are both generated
// from the same field declarations.
type Pattern struct {
	fields  []Field
	re      *regexp.Regexp
	display string
}

// Display renders the pattern for error messages. Optional parts are
// enclosed in square brackets.
func (p *Pattern) Display() string { return p.display }

// Fields returns the declared fields in order.
func (p *Pattern) Fields() []Field { return p.fields }

// Field looks up a declared field by name.
func (p *Pattern) Field(name string) (Field, bool) {
	for _, f := range p.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Match parses a display name against the pattern. On success the returned
// map holds every capture that participated in the match, keyed by field
// name. ok is false when the name does not follow the convention.
func (p *Pattern) Match(name string) (map[string]string, bool) {
	idx := p.re.FindStringSubmatchIndex(name)
	if idx == nil {
		return nil, false
	}
	fields := make(map[string]string)
	for i, groupName := range p.re.SubexpNames() {
		if groupName == "" || idx[2*i] < 0 {
			continue
		}
		fields[groupName] = name[idx[2*i]:idx[2*i+1]]
	}
	return fields, true
}

// patternBuilder assembles a Pattern from literal, raw and field parts so
// the regexp and the rendering can never drift apart.
type patternBuilder struct {
	fields  []Field
	re      strings.Builder
	display strings.Builder
}

func (b *patternBuilder) lit(s string) {
	b.re.WriteString(regexp.QuoteMeta(s))
	b.display.WriteString(s)
}

// raw appends a regexp fragment that renders differently from how it
// matches (flexible spacing, alternations).
func (b *patternBuilder) raw(re, display string) {
	b.re.WriteString(re)
	b.display.WriteString(display)
}

func (b *patternBuilder) field(name, expr string, kind FieldKind) {
	b.fields = append(b.fields, Field{Name: name, Kind: kind})
	b.re.WriteString("(?P<" + name + ">" + expr + ")")
	b.display.WriteString("<" + name + ">")
}

// optional wraps the parts added by fn in a non-capturing optional group.
func (b *patternBuilder) optional(fn func(*patternBuilder)) {
	sub := &patternBuilder{}
	fn(sub)
	for i := range sub.fields {
		sub.fields[i].Optional = true
	}
	b.fields = append(b.fields, sub.fields...)
	b.re.WriteString("(?:" + sub.re.String() + ")?")
	b.display.WriteString("[" + sub.display.String() + "]")
}

func (b *patternBuilder) build() *Pattern {
	return &Pattern{
		fields:  b.fields,
		re:      regexp.MustCompile("^" + b.re.String() + "$"),
		display: b.display.String(),
	}
}

// albumPattern matches names like
// "Artist - Album (2001) [CD-FLAC] {DELUXE}". The artist part is dropped
// when the run assumes album names never carry one.
func albumPattern(withArtist bool) *Pattern {
	b := &patternBuilder{}
	if withArtist {
		b.optional(func(b *patternBuilder) {
			b.field("ALBUMARTIST", `.*?`, FieldText)
			b.lit(" - ")
		})
	}
	b.field("ALBUM", `.*`, FieldText)
	b.lit(" (")
	b.field("DATE", `.*`, FieldDate)
	b.lit(") [")
	b.field("MEDIA", `.+?`, FieldText)
	b.raw(` ?- ?FLAC`, "-FLAC")
	b.optional(func(b *patternBuilder) {
		b.raw(` ?- ?`, "-")
		b.field("QUALITY", `[^\]]*`, FieldText)
	})
	b.lit("]")
	b.optional(func(b *patternBuilder) {
		b.lit(" {")
		b.field("OTHERINFO", `.*`, FieldText)
		b.lit("}")
	})
	return b.build()
}

// discPattern matches "CD1", "Disc 2" and the like.
func discPattern() *Pattern {
	b := &patternBuilder{}
	b.raw(`(?:CD|Disc )`, "(CD|Disc )")
	b.field("DISCNUMBER", `[^ ]*`, FieldText)
	return b.build()
}

// trackPattern matches "01 - Title.flac" or "01 - Artist - Title.flac".
func trackPattern(withArtist bool) *Pattern {
	b := &patternBuilder{}
	b.field("TRACKNUMBER", `[^ ]*`, FieldText)
	b.lit(" - ")
	if withArtist {
		b.optional(func(b *patternBuilder) {
			b.field("ARTIST", `.*`, FieldText)
			b.lit(" - ")
		})
	}
	b.field("TITLE", `.*`, FieldText)
	b.lit(".flac")
	return b.build()
}
