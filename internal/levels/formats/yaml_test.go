package formats

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

func TestParseLayoutErrors(t *testing.T) {
	legend := map[rune]maze.Wall{GlyphWall: maze.UniformWall("brick")}

	tests := []struct {
		name    string
		rows    []string
		message string
	}{
		{"empty", nil, "empty"},
		{"ragged", []string{"S..", "..E."}, "width"},
		{"no start", []string{"...E"}, "no start"},
		{"no end", []string{"S..."}, "no end"},
		{"two starts", []string{"S.SE"}, "second start"},
		{"two monsters", []string{"SMME"}, "second monster"},
		{"unknown glyph", []string{"S?.E"}, "unknown glyph"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout("x", tc.rows, legend)
			if err == nil || !strings.Contains(err.Error(), tc.message) {
				t.Errorf("ParseLayout() error = %v, expected mention of %q", err, tc.message)
			}
		})
	}
}

func TestFormatLayoutRoundTrip(t *testing.T) {
	rows := []string{
		"#######",
		"#S.K.T#",
		"#.~+G.#",
		"#M...E#",
		"#######",
	}
	legend := map[rune]maze.Wall{GlyphWall: maze.UniformWall("brick")}

	def, err := ParseLayout("rt", rows, legend)
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	if got := FormatLayout(def); !reflect.DeepEqual(got, rows) {
		t.Errorf("FormatLayout() = %q, expected %q", got, rows)
	}
}

func TestParseYAMLMonsterWait(t *testing.T) {
	doc := `
id: m
layout:
  - "S.M.E"
`
	lvl, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if lvl.Definition.MonsterStart == nil {
		t.Errorf("monster start not parsed")
	}
	if lvl.Definition.MonsterWait != nil {
		t.Errorf("monster wait = %v, expected nil without a monster section", *lvl.Definition.MonsterWait)
	}

	_, err = ParseYAML([]byte(doc + "monster:\n  wait: -1\n"))
	if err == nil {
		t.Errorf("ParseYAML() accepted negative monster wait")
	}
}

func TestParseYAMLRequiresID(t *testing.T) {
	_, err := ParseYAML([]byte("layout:\n  - \"SE\"\n"))
	if err == nil {
		t.Errorf("ParseYAML() accepted level without id")
	}
}

func TestParseYAMLRejectsReservedLegendGlyphs(t *testing.T) {
	tests := []struct {
		name  string
		glyph string
		ok    bool
	}{
		{"start", "S", false},
		{"end", "E", false},
		{"key", "K", false},
		{"monster", "M", false},
		{"floor", ".", false},
		{"barrier", "~", false},
		{"wall override", "#", true},
		{"extra wall", "W", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := "id: l\nwalls:\n  legend:\n    \"" + tc.glyph + "\": {all: stone}\nlayout:\n  - \"S" + tc.glyph + ".E\"\n"
			_, err := ParseYAML([]byte(doc))
			if tc.ok && err != nil {
				t.Errorf("ParseYAML() legend %q error = %v", tc.glyph, err)
			}
			if !tc.ok && (err == nil || !strings.Contains(err.Error(), "reserved")) {
				t.Errorf("ParseYAML() legend %q error = %v, expected a reserved glyph error", tc.glyph, err)
			}
		})
	}

	legend := map[rune]maze.Wall{GlyphStart: maze.UniformWall("brick")}
	if _, err := ParseLayout("x", []string{"S.E"}, legend); err == nil {
		t.Errorf("ParseLayout() accepted a legend that shadows the start glyph")
	}
}
