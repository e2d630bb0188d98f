package release

import (
	"fmt"
	"sort"
)

// Missing classifies how a tag is absent across a subtree's tracks.
type Missing int

const (
	// MissingNone means every track has the tag.
	MissingNone Missing = iota
	// MissingSome means a strict subset of tracks lacks the tag.
	MissingSome
	// MissingAll means no track has the tag.
	MissingAll
)

// TagValue is one aggregated tag entry. Missing marks a placeholder for a
// track that does not carry the tag at all.
type TagValue struct {
	Value   string
	Missing bool
}

// TagValues collects a tag's values across the subtree rooted at n, in child
// order. At a track the first stored value is used; absent tags contribute
// nothing, or one Missing placeholder when placeholder is set.
func TagValues(n Node, tag string, placeholder bool) []TagValue {
	return tagValues(n, tag, placeholder, nil)
}

func tagValues(n Node, tag string, placeholder bool, r *run) []TagValue {
	children := n.Children()
	if children == nil {
		values, ok := n.Tags()[tag]
		if !ok || len(values) == 0 {
			if placeholder {
				return []TagValue{{Missing: true}}
			}
			return nil
		}
		if len(values) > 1 && r != nil {
			key := n.Path() + "\x00" + tag
			if _, seen := r.seenDup[key]; !seen {
				r.seenDup[key] = struct{}{}
				r.reportf(n, KindDuplicateTag, SeverityProblem, tag,
					"Found %d '%s' tags: %v", len(values), tag, values)
			}
		}
		return []TagValue{{Value: values[0]}}
	}

	var out []TagValue
	for _, c := range children {
		out = append(out, tagValues(c, tag, placeholder, r)...)
	}
	return out
}

// ClassifyTag reports how a tag is missing across the subtree and whether the
// tracks that do carry it disagree. The messages explain the classification
// and are suitable for direct reporting.
func ClassifyTag(n Node, tag string) (Missing, bool, []string) {
	return classifyTag(n, tag, nil)
}

func classifyTag(n Node, tag string, r *run) (Missing, bool, []string) {
	values := tagValues(n, tag, true, r)

	missing := 0
	distinct := make(map[string]struct{})
	for _, v := range values {
		if v.Missing {
			missing++
			continue
		}
		distinct[v.Value] = struct{}{}
	}

	code := MissingNone
	var msgs []string
	if missing > 0 {
		if len(distinct) == 0 {
			code = MissingAll
			msgs = append(msgs, "missing from all items")
		} else {
			code = MissingSome
			msgs = append(msgs, fmt.Sprintf("missing from %d/%d items", missing, len(values)))
		}
	}

	multiple := len(distinct) > 1
	if multiple {
		vals := make([]string, 0, len(distinct))
		for v := range distinct {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		msgs = append(msgs, fmt.Sprintf("multiple values: %v", vals))
	}

	return code, multiple, msgs
}

// ConsistentValue returns the tag value as seen by this level: the single
// value shared by every track in the subtree. ok is false when the tag is
// missing anywhere or the tracks disagree.
func ConsistentValue(n Node, tag string) (string, bool) {
	code, multiple, _ := ClassifyTag(n, tag)
	if code != MissingNone || multiple {
		return "", false
	}
	values := TagValues(n, tag, false)
	if len(values) == 0 {
		return "", false
	}
	return values[0].Value, true
}

// tagAndClassify is the combined accessor used by the compilation and name
// checks: the consistent value (empty if unavailable) plus the raw
// classification.
func tagAndClassify(n Node, tag string) (string, Missing, bool) {
	code, multiple, _ := ClassifyTag(n, tag)
	if code == MissingNone && !multiple {
		v, _ := ConsistentValue(n, tag)
		return v, code, multiple
	}
	return "", code, multiple
}
