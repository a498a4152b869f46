package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/Faultbox/bounce-box/internal/sim"
)

// Tone is a decaying sine burst.
type Tone struct {
	Freq     float64       // Hz
	Duration time.Duration // total length
	Gain     float64       // peak amplitude, 0 to 1
	Decay    float64       // exponential decay rate per second
}

// Bounce sounds: a low thud for the ground and a short knock for walls.
var (
	GroundThud = Tone{Freq: 110, Duration: 120 * time.Millisecond, Gain: 0.8, Decay: 30}
	WallKnock  = Tone{Freq: 330, Duration: 60 * time.Millisecond, Gain: 0.5, Decay: 60}
)

// Scaled returns t with its gain multiplied by f, clamped to [0, 1].
func (t Tone) Scaled(f float64) Tone {
	t.Gain = clamp(t.Gain*f, 0, 1)
	return t
}

// Streamer renders t at the given sample rate. The same sample goes to
// both channels.
func (t Tone) Streamer(sr beep.SampleRate) beep.Streamer {
	total := sr.N(t.Duration)
	step := 2 * math.Pi * t.Freq / float64(sr)
	rate := float64(sr)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			env := t.Gain * math.Exp(-t.Decay*float64(pos)/rate)
			v := env * math.Sin(step*float64(pos))
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

// ContactTones returns the sounds for the contacts of one tick. strength
// scales the gain, usually the impact speed relative to one impulse.
func ContactTones(c sim.Contact, strength float64) []Tone {
	if c == 0 || strength <= 0 {
		return nil
	}
	var tones []Tone
	if c.Has(sim.ContactGround) {
		tones = append(tones, GroundThud.Scaled(strength))
	}
	if c.Has(sim.ContactWallX) || c.Has(sim.ContactWallZ) {
		tones = append(tones, WallKnock.Scaled(strength))
	}
	return tones
}
