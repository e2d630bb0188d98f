// Package report renders validation results as YAML and text.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/checkflac/checkflac/internal/release"
	"gopkg.in/yaml.v3"
)

// Result is the outcome of one root's validation pass, as collected from
// the concurrent workers before rendering.
type Result struct {
	Err      error
	Reporter *release.CollectingReporter
}

// Config records the run options a report was produced with.
type Config struct {
	StopLevel      string `yaml:"stoplevel,omitempty" json:"stoplevel,omitempty"`
	SkipReplayGain bool   `yaml:"skipreplaygain" json:"skipreplaygain"`
	SkipVerify     bool   `yaml:"skipverify" json:"skipverify"`
	DateYearOnly   bool   `yaml:"dateyearonly" json:"dateyearonly"`
	Timestamp      string `yaml:"timestamp" json:"timestamp"`
}

// Finding is the serialized form of a release.Finding.
type Finding struct {
	Level    string `yaml:"level" json:"level"`
	Path     string `yaml:"path" json:"path"`
	Tag      string `yaml:"tag,omitempty" json:"tag,omitempty"`
	Kind     string `yaml:"kind" json:"kind"`
	Severity string `yaml:"severity" json:"severity"`
	Message  string `yaml:"message" json:"message"`
}

// Root holds one album's results. Error is set when the root could not be
// opened at all (setup failure).
type Root struct {
	Root     string    `yaml:"root" json:"root"`
	Error    string    `yaml:"error,omitempty" json:"error,omitempty"`
	Findings []Finding `yaml:"findings" json:"findings"`
}

// Summary aggregates the counts across every root.
type Summary struct {
	Roots    int `yaml:"roots" json:"roots"`
	Failures int `yaml:"failures" json:"failures"`
	Problems int `yaml:"problems" json:"problems"`
	Warnings int `yaml:"warnings" json:"warnings"`
}

// Report is the complete run output.
type Report struct {
	Config  Config  `yaml:"config" json:"config"`
	Roots   []Root  `yaml:"roots" json:"roots"`
	Summary Summary `yaml:"summary" json:"summary"`
}

// New starts a report with the current timestamp.
func New(cfg Config) *Report {
	cfg.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	return &Report{Config: cfg}
}

// AddRoot appends one album's findings.
func (r *Report) AddRoot(root string, findings []release.Finding) {
	rec := Root{Root: root, Findings: make([]Finding, 0, len(findings))}
	for _, f := range findings {
		rec.Findings = append(rec.Findings, Finding{
			Level:    f.Level.String(),
			Path:     f.Path,
			Tag:      f.Tag,
			Kind:     f.Kind,
			Severity: string(f.Severity),
			Message:  f.Message,
		})
	}
	r.Roots = append(r.Roots, rec)
}

// AddFailure records a root that could not be opened.
func (r *Report) AddFailure(root string, err error) {
	r.Roots = append(r.Roots, Root{Root: root, Error: err.Error()})
}

// Finalize computes the summary counts from the recorded roots.
func (r *Report) Finalize() {
	s := Summary{Roots: len(r.Roots)}
	for _, root := range r.Roots {
		if root.Error != "" {
			s.Failures++
			continue
		}
		for _, f := range root.Findings {
			if f.Severity == string(release.SeverityWarning) {
				s.Warnings++
			} else {
				s.Problems++
			}
		}
	}
	r.Summary = s
}

// Save writes the report as YAML, creating parent directories as needed.
func Save(path string, r *Report) error {
	r.Finalize()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Load reads a previously saved YAML report.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
