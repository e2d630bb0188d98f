package release

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Tags that may legitimately be absent from every track. Their handling is
// deferred: an unset ALBUMARTIST is resolved by the compilation logic, and an
// unset ORIGINALDATE falls back to DATE.
var absentOK = map[string]bool{
	"ALBUMARTIST":  true,
	"ORIGINALDATE": true,
}

// checkAllSame validates that a tag is present on every track of the subtree
// with a single value, reporting the classification otherwise.
func (r *run) checkAllSame(n Node, tag string) {
	code, multiple, msgs := classifyTag(n, tag, r)

	if code == MissingAll && absentOK[tag] {
		return
	}
	if code == MissingNone && !multiple {
		return
	}

	if n.Level() == LevelTrack {
		// A single track cannot disagree with itself.
		r.reportf(n, KindMissingTag, SeverityProblem, tag,
			"Problem with tag %s: missing", tag)
		return
	}
	kind := KindMissingTag
	if code == MissingNone {
		kind = KindMultipleValues
	}
	r.reportf(n, kind, SeverityProblem, tag,
		"Problem with tag %s: %s", tag, strings.Join(msgs, ", "))
}

func (r *run) checkRequiredTags(n Node) {
	for _, tag := range n.requiredTags() {
		r.checkAllSame(n, tag)
	}
}

// checkGainTags applies the same consistency rule to the replay-gain tags.
// To regenerate them: `metaflac --add-replay-gain <all files from disc>`.
func (r *run) checkGainTags(n Node) {
	for _, tag := range n.gainTags() {
		r.checkAllSame(n, tag)
	}
}

// deprecatedTags maps legacy or misnamed tag patterns to the advice given
// when one is seen. Each tag name is checked at most once per run.
var deprecatedTags = []struct {
	re     *regexp.Regexp
	advice func(tag string) string
}{
	{regexp.MustCompile(`^YEAR$`), func(string) string {
		return "rename it to DATE"
	}},
	{regexp.MustCompile(`^TOTAL(DISC|TRACK)S$`), func(tag string) string {
		kind := strings.TrimSuffix(strings.TrimPrefix(tag, "TOTAL"), "S")
		return "convert it to " + kind + "TOTAL"
	}},
	{regexp.MustCompile(`SORT`), func(string) string {
		return "sort helper tags belong in the player, delete it"
	}},
}

// dateTags are validated against the date grammar during the sweep.
var dateTags = map[string]bool{
	"DATE":         true,
	"ORIGINALDATE": true,
}

// sweepTags examines every tag of every track in the subtree: deprecated tag
// names, empty or untrimmed values, and malformed dates. Tracks already swept
// by an enclosing node are skipped so findings are reported once.
func (r *run) sweepTags(n Node) {
	if children := n.Children(); children != nil {
		for _, c := range children {
			r.sweepTags(c)
		}
		return
	}

	if _, done := r.sweptItems[n.Path()]; done {
		return
	}
	r.sweptItems[n.Path()] = struct{}{}

	tags := n.Tags()
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r.checkDeprecated(n, name)
		for _, value := range tags[name] {
			r.checkValue(n, name, value)
		}
	}
}

func (r *run) checkDeprecated(n Node, tag string) {
	if _, done := r.checkedTags[tag]; done {
		return
	}
	r.checkedTags[tag] = struct{}{}

	for _, d := range deprecatedTags {
		if d.re.MatchString(tag) {
			r.reportf(n, KindDeprecatedTag, SeverityProblem, tag,
				"Deprecated tag %s detected - %s", tag, d.advice(tag))
			return
		}
	}
}

func (r *run) checkValue(n Node, tag, value string) {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		r.reportf(n, KindWhitespace, SeverityProblem, tag,
			"Tag %s has an empty or whitespace-only value", tag)
		return
	case trimmed != value:
		r.reportf(n, KindWhitespace, SeverityProblem, tag,
			"Tag %s has extra whitespace: '%s'", tag, value)
	}

	if dateTags[tag] {
		if _, ok := ParseDate(trimmed); !ok {
			r.reportf(n, KindBadDate, SeverityProblem, tag,
				"Tag %s is not a valid date: '%s' (expected yyyy[-mm[-dd]])", tag, value)
		}
	}
}

// checkNumbers validates the <kind>TOTAL tag against the child count and the
// <kind>NUMBER sort order. Albums count discs, discs count tracks; tracks
// have nothing to count.
func (r *run) checkNumbers(n Node) {
	var kind string
	switch n.Level() {
	case LevelAlbum:
		kind = "DISC"
	case LevelDisc:
		kind = "TRACK"
	default:
		return
	}

	badTotalTag := "TOTAL" + kind + "S"
	totalTag := kind + "TOTAL"
	numberTag := kind + "NUMBER"
	word := strings.ToLower(kind)

	// The TOTAL<kind>S spelling predates <kind>TOTAL and should go away.
	if len(tagValues(n, badTotalTag, false, r)) > 0 {
		if len(tagValues(n, totalTag, false, r)) > 0 {
			r.reportf(n, KindBadTotal, SeverityProblem, badTotalTag,
				"%s tag(s) detected, delete them (%s tag already exists)", badTotalTag, totalTag)
		} else {
			r.reportf(n, KindBadTotal, SeverityProblem, badTotalTag,
				"%s tag(s) detected, convert them to %s tags", badTotalTag, totalTag)
		}
	}

	if value, ok := ConsistentValue(n, totalTag); ok {
		total, err := strconv.Atoi(value)
		switch {
		case err != nil:
			r.reportf(n, KindBadTotal, SeverityProblem, totalTag,
				"Problem with %s tag (non-numeric)", totalTag)
		case total < 1:
			r.reportf(n, KindBadTotal, SeverityProblem, totalTag,
				"Problem with %s tag (must be a positive number)", totalTag)
		case total != len(n.Children()):
			r.reportf(n, KindBadTotal, SeverityProblem, totalTag,
				"Problem with %s tag (found %d %ss, %s=%d)", totalTag, len(n.Children()), word, totalTag, total)
		}
	}

	values := tagValues(n, numberTag, false, r)
	if len(values) == 0 {
		return
	}
	numbers := make([]int, 0, len(values))
	for _, v := range values {
		num, err := strconv.Atoi(v.Value)
		if err != nil {
			r.reportf(n, KindSkippedCheck, SeverityWarning, numberTag,
				"Not checking %s sort order (%s metadata is non-numeric)", word, numberTag)
			return
		}
		numbers = append(numbers, num)
	}
	if !sort.IntsAreSorted(numbers) {
		title := strings.ToUpper(word[:1]) + word[1:]
		r.reportf(n, KindBadSortOrder, SeverityProblem, numberTag,
			"%ss do not sort properly according to the %s metadata", title, numberTag)
	}
}

// checkName reconciles the node's display name against the naming pattern
// and the subtree's tags.
func (r *run) checkName(n Node) {
	name := n.Name()
	if name == "" {
		return
	}

	if name != SanitizeName(name) {
		r.reportf(n, KindBadName, SeverityProblem, "",
			"Invalid characters detected in the %s name: '%s'", n.Level().filetype(), name)
	}

	pattern := n.namePattern(r.cfg)
	fields, ok := pattern.Match(name)
	if !ok {
		r.reportf(n, KindBadName, SeverityProblem, "",
			"Incorrect %s %s name - correct format is '%s'", n.Level(), n.Level().filetype(), pattern.Display())
		return
	}

	required := n.requiredTags()
	for _, field := range pattern.Fields() {
		extracted, present := fields[field.Name]
		if !present || !contains(required, field.Name) {
			continue
		}

		tagName := field.Name
		if field.Kind == FieldDate {
			// The name usually carries the original release year; use
			// the refined date tag when any track has one.
			if code, _, _ := ClassifyTag(n, "ORIGINALDATE"); code != MissingAll {
				tagName = "ORIGINALDATE"
			}
		}

		value, ok := ConsistentValue(n, tagName)
		if !ok {
			r.reportf(n, KindSkippedCheck, SeverityWarning, field.Name,
				"Unable to validate %s against the %s name (see above)", tagName, n.Level().filetype())
			continue
		}

		if !tagMatchesName(value, extracted, field.Kind, r.cfg.DateYearOnly) {
			r.reportf(n, KindNameMismatch, SeverityProblem, field.Name,
				"Mismatch in tag %s: %s='%s', tag='%s'", tagName, n.Level().filetype(), extracted, value)
		}
	}

	n.nameChecks(r, fields)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
