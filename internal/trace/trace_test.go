package trace

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bounce-box/internal/scene"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		in      string
		want    Script
		wantErr bool
	}{
		{"", nil, false},
		{"0:e", Script{{0, 'e'}}, false},
		{"30:j, 10:space,20:esc", Script{{10, ' '}, {20, 0x1b}, {30, 'j'}}, false},
		{"5:Q", Script{{5, 'Q'}}, false},
		{"e", nil, true},
		{"-1:e", nil, true},
		{"x:e", nil, true},
		{"3:jk", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScript(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseScript(%q) succeeded", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScript(%q): %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("press %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRunRecordsEveryNthAndContacts(t *testing.T) {
	samples, err := Run(scene.Box(), Options{Ticks: 100, Every: 10})
	if err != nil {
		t.Fatal(err)
	}

	regular, contacts := 0, 0
	for i, s := range samples {
		if i > 0 && s.Tick <= samples[i-1].Tick {
			t.Fatalf("ticks not increasing at %d", i)
		}
		if s.Tick%10 == 0 {
			regular++
		}
		if s.Contact != 0 {
			contacts++
		}
	}
	if regular != 10 {
		t.Errorf("got %d regular samples, want 10", regular)
	}
	// Starting at x=0 moving 0.03 per tick, the right wall is reached by tick 50.
	if contacts == 0 {
		t.Error("expected at least one contact in 100 ticks")
	}
}

func TestRunScript(t *testing.T) {
	script, err := ParseScript("0:e")
	if err != nil {
		t.Fatal(err)
	}
	samples, err := Run(scene.Box(), Options{Ticks: 20, Every: 5, Script: script})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range samples {
		if !s.Paused || s.Position != [3]float32{0, 1, -1} {
			t.Fatalf("paused run moved: %+v", s)
		}
	}

	script, _ = ParseScript("5:q")
	samples, err = Run(scene.Box(), Options{Ticks: 100, Every: 10, Script: script})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 || samples[0].Tick != 0 {
		t.Errorf("exit key should stop the run after tick 0, got %d samples", len(samples))
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := scene.Box()
	cfg.Sim.Radius = 0
	if _, err := Run(cfg, Options{Ticks: 1}); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestWriters(t *testing.T) {
	samples, err := Run(scene.Classic(), Options{Ticks: 3, Script: Script{{0, ' '}}})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}

	var table bytes.Buffer
	if err := WriteTable(&table, samples); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	if len(lines) != 4 || !strings.Contains(lines[0], "tick") {
		t.Errorf("unexpected table:\n%s", table.String())
	}

	var out bytes.Buffer
	if err := WriteYAML(&out, samples); err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(decoded) != 3 || decoded[2]["tick"] != 2 {
		t.Errorf("decoded %v", decoded)
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		s    Sample
		want string
	}{
		{Sample{}, "-"},
		{Sample{Contact: 1}, "G"},
		{Sample{Contact: 2 | 4, Rest: true}, "WR"},
		{Sample{Paused: true}, "P"},
	}
	for _, tt := range tests {
		if got := flags(tt.s); got != tt.want {
			t.Errorf("flags(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
