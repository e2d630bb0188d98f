package release

import "fmt"

// Severity indicates how a finding should be acted on.
type Severity string

const (
	// SeverityProblem indicates a convention violation that should be fixed.
	SeverityProblem Severity = "problem"
	// SeverityWarning indicates something worth reviewing or a check that
	// had to be skipped.
	SeverityWarning Severity = "warning"
)

// Finding kind constants identify the class of issue found.
const (
	KindMissingTag     = "missing_tag"
	KindMultipleValues = "multiple_values"
	KindDuplicateTag   = "duplicate_tag"
	KindDeprecatedTag  = "deprecated_tag"
	KindWhitespace     = "whitespace"
	KindBadDate        = "bad_date"
	KindBadTotal       = "bad_total"
	KindBadSortOrder   = "bad_sort_order"
	KindBadName        = "bad_name"
	KindNameMismatch   = "name_mismatch"
	KindCompilation    = "compilation"
	KindMissingFile    = "missing_file"
	KindExtraFile      = "extra_file"
	KindPathTooLong    = "path_too_long"
	KindEmbeddedArt    = "embedded_art"
	KindVerifyFailed   = "verify_failed"
	KindUnreadable     = "unreadable"
	KindSkippedCheck   = "skipped_check"
)

// Finding is a single validation issue, reported at the node where it was
// detected. Validation never stops on a finding.
type Finding struct {
	Level    Level
	Path     string
	Tag      string // tag or name field involved, if any
	Kind     string
	Severity Severity
	Message  string
}

// Reporter receives node announcements and findings in traversal order.
type Reporter interface {
	// BeginNode is called before a node's checks run. name is empty when
	// the node shares its directory with its parent.
	BeginNode(level Level, name string)
	Report(f Finding)
}

// ConsoleReporter prints nodes and findings to stdout as they are detected.
type ConsoleReporter struct{}

func (ConsoleReporter) BeginNode(level Level, name string) {
	if name == "" {
		fmt.Printf("Validating the only %s\n", level)
		return
	}
	fmt.Printf("Validating %s: %s\n", level, name)
}

func (ConsoleReporter) Report(f Finding) {
	if f.Severity == SeverityWarning {
		fmt.Printf("WARNING: %s\n", f.Message)
		return
	}
	fmt.Println(f.Message)
}

// CollectingReporter buffers everything for later rendering. Used for
// concurrent runs (deterministic flush order) and for the YAML report.
type CollectingReporter struct {
	Events []Event
}

// Event is either a node announcement (Finding == nil) or a finding.
type Event struct {
	Level   Level
	Name    string
	Finding *Finding
}

func (c *CollectingReporter) BeginNode(level Level, name string) {
	c.Events = append(c.Events, Event{Level: level, Name: name})
}

func (c *CollectingReporter) Report(f Finding) {
	c.Events = append(c.Events, Event{Level: f.Level, Finding: &f})
}

// Findings returns just the findings, in report order.
func (c *CollectingReporter) Findings() []Finding {
	var out []Finding
	for _, e := range c.Events {
		if e.Finding != nil {
			out = append(out, *e.Finding)
		}
	}
	return out
}

// Replay forwards the buffered events to another reporter.
func (c *CollectingReporter) Replay(r Reporter) {
	for _, e := range c.Events {
		if e.Finding != nil {
			r.Report(*e.Finding)
		} else {
			r.BeginNode(e.Level, e.Name)
		}
	}
}
