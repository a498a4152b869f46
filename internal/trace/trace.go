// Package trace runs a scene without a display and records its trajectory.
package trace

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bounce-box/internal/scene"
	"github.com/Faultbox/bounce-box/internal/sim"
)

// Press is one scripted key press, applied before the given tick.
type Press struct {
	Tick int
	Key  rune
}

// Script is a list of presses ordered by tick.
type Script []Press

// ParseScript parses "tick:key" pairs separated by commas, e.g. "0:e,30:j".
// The key "esc" stands for Escape and "space" for the space bar.
func ParseScript(s string) (Script, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var script Script
	for _, item := range strings.Split(s, ",") {
		tickStr, keyStr, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, fmt.Errorf("script entry %q: want tick:key", item)
		}
		tick, err := strconv.Atoi(tickStr)
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("script entry %q: bad tick", item)
		}
		key, err := parseKey(keyStr)
		if err != nil {
			return nil, fmt.Errorf("script entry %q: %w", item, err)
		}
		script = append(script, Press{Tick: tick, Key: key})
	}

	sort.SliceStable(script, func(i, j int) bool { return script[i].Tick < script[j].Tick })
	return script, nil
}

func parseKey(s string) (rune, error) {
	switch s {
	case "esc":
		return 0x1b, nil
	case "space":
		return ' ', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("key %q: want one character", s)
	}
	return r[0], nil
}

// Sample is the state after one recorded tick.
type Sample struct {
	Tick     int         `yaml:"tick"`
	Position [3]float32  `yaml:"position,flow"`
	Velocity [3]float32  `yaml:"velocity,flow"`
	Angle    float32     `yaml:"angle"`
	Rest     bool        `yaml:"rest,omitempty"`
	Paused   bool        `yaml:"paused,omitempty"`
	Camera   string      `yaml:"camera"`
	Contact  sim.Contact `yaml:"contact,omitempty"`
}

// Options control a run.
type Options struct {
	Ticks  int    // ticks to simulate
	Every  int    // record every Nth tick; contacts are always recorded
	Script Script // key presses
}

// Run simulates cfg and returns the recorded samples. It stops early when a
// scripted key requests exit.
func Run(cfg scene.Config, opts Options) ([]Sample, error) {
	s, err := scene.New(cfg)
	if err != nil {
		return nil, err
	}
	every := max(opts.Every, 1)

	var samples []Sample
	next := 0
	for tick := 0; tick < opts.Ticks; tick++ {
		for next < len(opts.Script) && opts.Script[next].Tick <= tick {
			if s.HandleKey(opts.Script[next].Key) {
				return samples, nil
			}
			next++
		}

		contact := s.Tick()
		if tick%every != 0 && contact == 0 {
			continue
		}

		st := s.State()
		samples = append(samples, Sample{
			Tick:     tick,
			Position: st.Position,
			Velocity: st.Velocity,
			Angle:    st.Angle,
			Rest:     st.Rest,
			Paused:   st.Paused,
			Camera:   st.Camera.String(),
			Contact:  contact,
		})
	}
	return samples, nil
}

// WriteTable prints samples as aligned columns.
func WriteTable(w io.Writer, samples []Sample) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "tick\tx\ty\tz\tvx\tvy\tvz\tangle\tflags\t")
	for _, s := range samples {
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.5f\t%.5f\t%.5f\t%.1f\t%s\t\n",
			s.Tick,
			s.Position[0], s.Position[1], s.Position[2],
			s.Velocity[0], s.Velocity[1], s.Velocity[2],
			s.Angle, flags(s))
	}
	return tw.Flush()
}

func flags(s Sample) string {
	var b strings.Builder
	if s.Contact.Has(sim.ContactGround) {
		b.WriteByte('G')
	}
	if s.Contact.Has(sim.ContactWallX) || s.Contact.Has(sim.ContactWallZ) {
		b.WriteByte('W')
	}
	if s.Rest {
		b.WriteByte('R')
	}
	if s.Paused {
		b.WriteByte('P')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// WriteYAML prints samples as a YAML sequence.
func WriteYAML(w io.Writer, samples []Sample) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(samples); err != nil {
		return err
	}
	return enc.Close()
}
