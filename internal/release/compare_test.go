package release

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no illegal characters", "Plain Title", "Plain Title"},
		{"angle brackets", "<Untitled>", "[Untitled]"},
		{"colon", "Title: Subtitle", "Title- Subtitle"},
		{"slashes and pipe", `AC\DC/Live|Wire`, "AC-DC-Live-Wire"},
		{"double quotes", `He Said "No"`, "He Said 'No'"},
		{"dropped characters", "What?! *Live*", "What! Live"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTagMatchesNameText(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		in   string
		want bool
	}{
		{"identical", "Title", "Title", true},
		{"substituted quotes", `Say "Hello"`, "Say 'Hello'", true},
		{"substituted slash", "Either/Or", "Either-Or", true},
		{"colon as dash", "Title: Subtitle", "Title - Subtitle", true},
		{"colon kept tight", "Title: Subtitle", "Title- Subtitle", true},
		{"dropped question mark", "Why?", "Why", true},
		{"different text", "Title", "Other", false},
		{"case differs", "Title", "title", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagMatchesName(tt.tag, tt.in, FieldText, false); got != tt.want {
				t.Errorf("tagMatchesName(%q, %q) = %v, want %v", tt.tag, tt.in, got, tt.want)
			}
		})
	}
}

func TestTagMatchesNameDate(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		in       string
		yearOnly bool
		want     bool
	}{
		{"same year", "2001", "2001", false, true},
		{"tag more precise", "2001-09-21", "2001", false, true},
		{"name more precise", "2001", "2001-09-21", false, true},
		{"different year", "2001", "2002", false, false},
		{"different day", "2001-09-21", "2001-09-22", false, false},
		{"unparseable tag", "someday", "2001", false, false},
		{"unparseable name", "2001", "someday", false, false},
		{"year only match", "2001-09-21", "2001", true, true},
		{"year only full date in name", "2001-09-21", "2001-09-21", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagMatchesName(tt.tag, tt.in, FieldDate, tt.yearOnly); got != tt.want {
				t.Errorf("tagMatchesName(%q, %q, yearOnly=%v) = %v, want %v", tt.tag, tt.in, tt.yearOnly, got, tt.want)
			}
		})
	}
}
