package release

import (
	"reflect"
	"testing"
)

func TestAlbumPatternMatch(t *testing.T) {
	tests := []struct {
		name       string
		withArtist bool
		input      string
		fields     map[string]string
		ok         bool
	}{
		{
			name:       "full form",
			withArtist: true,
			input:      "Artist - Album (2001) [CD-FLAC] {DELUXE}",
			fields: map[string]string{
				"ALBUMARTIST": "Artist", "ALBUM": "Album", "DATE": "2001",
				"MEDIA": "CD", "OTHERINFO": "DELUXE",
			},
			ok: true,
		},
		{
			name:       "no artist no extra info",
			withArtist: true,
			input:      "Album (2001) [WEB-FLAC]",
			fields:     map[string]string{"ALBUM": "Album", "DATE": "2001", "MEDIA": "WEB"},
			ok:         true,
		},
		{
			name:       "quality segment",
			withArtist: true,
			input:      "Artist - Album (2001) [Vinyl - FLAC - 24bit] {MASTER}",
			fields: map[string]string{
				"ALBUMARTIST": "Artist", "ALBUM": "Album", "DATE": "2001",
				"MEDIA": "Vinyl", "QUALITY": "24bit", "OTHERINFO": "MASTER",
			},
			ok: true,
		},
		{
			name:       "full date",
			withArtist: true,
			input:      "Artist - Album (2001-09-21) [CD-FLAC] {X}",
			fields: map[string]string{
				"ALBUMARTIST": "Artist", "ALBUM": "Album", "DATE": "2001-09-21",
				"MEDIA": "CD", "OTHERINFO": "X",
			},
			ok: true,
		},
		{
			name:       "artist narrowed out",
			withArtist: false,
			input:      "Some - Band - Album (2001) [CD-FLAC]",
			fields:     map[string]string{"ALBUM": "Some - Band - Album", "DATE": "2001", "MEDIA": "CD"},
			ok:         true,
		},
		{
			name:       "missing media block",
			withArtist: true,
			input:      "Artist - Album (2001)",
			ok:         false,
		},
		{
			name:       "missing date",
			withArtist: true,
			input:      "Artist - Album [CD-FLAC]",
			ok:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, ok := albumPattern(tt.withArtist).Match(tt.input)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(fields, tt.fields) {
				t.Errorf("Match(%q) = %v, want %v", tt.input, fields, tt.fields)
			}
		})
	}
}

func TestDiscPatternMatch(t *testing.T) {
	tests := []struct {
		input  string
		number string
		ok     bool
	}{
		{"CD1", "1", true},
		{"Disc 2", "2", true},
		{"CD", "", true},
		{"Bonus", "", false},
	}

	for _, tt := range tests {
		fields, ok := discPattern().Match(tt.input)
		if ok != tt.ok {
			t.Errorf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && fields["DISCNUMBER"] != tt.number {
			t.Errorf("Match(%q) DISCNUMBER = %q, want %q", tt.input, fields["DISCNUMBER"], tt.number)
		}
	}
}

func TestTrackPatternMatch(t *testing.T) {
	tests := []struct {
		name       string
		withArtist bool
		input      string
		fields     map[string]string
		ok         bool
	}{
		{
			name:       "number and title",
			withArtist: true,
			input:      "01 - Title.flac",
			fields:     map[string]string{"TRACKNUMBER": "01", "TITLE": "Title"},
			ok:         true,
		},
		{
			name:       "with artist",
			withArtist: true,
			input:      "01 - Artist - Title.flac",
			fields:     map[string]string{"TRACKNUMBER": "01", "ARTIST": "Artist", "TITLE": "Title"},
			ok:         true,
		},
		{
			name:       "artist narrowed out",
			withArtist: false,
			input:      "01 - Artist - Title.flac",
			fields:     map[string]string{"TRACKNUMBER": "01", "TITLE": "Artist - Title"},
			ok:         true,
		},
		{
			name:       "wrong extension",
			withArtist: true,
			input:      "01 - Title.mp3",
			ok:         false,
		},
		{
			name:       "no separator",
			withArtist: true,
			input:      "01 Title.flac",
			ok:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, ok := trackPattern(tt.withArtist).Match(tt.input)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(fields, tt.fields) {
				t.Errorf("Match(%q) = %v, want %v", tt.input, fields, tt.fields)
			}
		})
	}
}

func TestPatternDisplay(t *testing.T) {
	if got, want := albumPattern(true).Display(),
		"[<ALBUMARTIST> - ]<ALBUM> (<DATE>) [<MEDIA>-FLAC[-<QUALITY>]][ {<OTHERINFO>}]"; got != want {
		t.Errorf("album display = %q, want %q", got, want)
	}
	if got, want := albumPattern(false).Display(),
		"<ALBUM> (<DATE>) [<MEDIA>-FLAC[-<QUALITY>]][ {<OTHERINFO>}]"; got != want {
		t.Errorf("narrowed album display = %q, want %q", got, want)
	}
	if got, want := trackPattern(true).Display(), "<TRACKNUMBER> - [<ARTIST> - ]<TITLE>.flac"; got != want {
		t.Errorf("track display = %q, want %q", got, want)
	}
}

func TestPatternOptionalFields(t *testing.T) {
	p := albumPattern(true)
	for _, name := range []string{"ALBUMARTIST", "QUALITY", "OTHERINFO"} {
		f, ok := p.Field(name)
		if !ok || !f.Optional {
			t.Errorf("field %s: ok=%v optional=%v, want declared optional", name, ok, f.Optional)
		}
	}
	for _, name := range []string{"ALBUM", "DATE", "MEDIA"} {
		f, ok := p.Field(name)
		if !ok || f.Optional {
			t.Errorf("field %s: ok=%v optional=%v, want declared required", name, ok, f.Optional)
		}
	}
	if _, ok := albumPattern(false).Field("ALBUMARTIST"); ok {
		t.Error("narrowed pattern must not declare ALBUMARTIST")
	}
}
