package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Effect timings
const (
	ClickSoundDuration = 25 * time.Millisecond
	ClickSoundAttack   = 1 * time.Millisecond
	ClickSoundRelease  = 20 * time.Millisecond

	ErrorSoundDuration = 180 * time.Millisecond
	ErrorSoundAttack   = 5 * time.Millisecond
	ErrorSoundRelease  = 60 * time.Millisecond

	BellSoundDuration           = 400 * time.Millisecond
	BellSoundAttack             = 2 * time.Millisecond
	BellSoundFundamentalRelease = 380 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond

	CoinSoundNote1Duration = 90 * time.Millisecond
	CoinSoundNote2Duration = 300 * time.Millisecond
	CoinSoundAttack        = 2 * time.Millisecond
	CoinSoundNote1Release  = 20 * time.Millisecond
	CoinSoundNote2Release  = 250 * time.Millisecond

	WhooshSoundDuration = 500 * time.Millisecond
	WhooshSoundAttack   = 120 * time.Millisecond
	WhooshSoundRelease  = 350 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateClickSound generates a short tick for the conductor typewriter
func CreateClickSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, ClickSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, ClickSoundDuration, ClickSoundAttack, ClickSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundClick]*cfg.MasterVolume)
}

// CreateErrorSound generates a harsh buzz for a wrong letter
func CreateErrorSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(100.0, ErrorSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, ErrorSoundDuration, ErrorSoundAttack, ErrorSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundError]*cfg.MasterVolume)
}

// CreateBellSound generates a short ding for a right letter
func CreateBellSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// A5 with an octave overtone
	fund := NewOscillator(880.0, BellSoundDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, BellSoundDuration, BellSoundAttack, BellSoundFundamentalRelease, rate)

	over := NewOscillator(1760.0, BellSoundDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, BellSoundDuration, BellSoundAttack, BellSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)

	return newVolume(mixed, cfg.EffectVolumes[SoundBell]*cfg.MasterVolume)
}

// CreateCoinSound generates a two-note chime for a solved word
func CreateCoinSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// B5 then E6
	n1 := NewOscillator(987.77, CoinSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, CoinSoundNote1Duration, CoinSoundAttack, CoinSoundNote1Release, rate)

	n2 := NewOscillator(1318.51, CoinSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, CoinSoundNote2Duration, CoinSoundAttack, CoinSoundNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.EffectVolumes[SoundCoin]*cfg.MasterVolume)
}

// CreateWhooshSound generates a falling noise burst for a lost round
func CreateWhooshSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, WhooshSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, WhooshSoundDuration, WhooshSoundAttack, WhooshSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundWhoosh]*cfg.MasterVolume)
}

// GetSoundEffect returns the synthesized streamer for the given type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundClick:
		return CreateClickSound(cfg)
	case SoundError:
		return CreateErrorSound(cfg)
	case SoundBell:
		return CreateBellSound(cfg)
	case SoundCoin:
		return CreateCoinSound(cfg)
	case SoundWhoosh:
		return CreateWhooshSound(cfg)
	default:
		return nil
	}
}

// themeNotes is the arpeggio of the fallback background loop (A minor)
var themeNotes = []float64{220.00, 261.63, 329.63, 261.63, 196.00, 246.94, 293.66, 246.94}

// MusicGenerator synthesizes an endless quiet arpeggio used when no music file is set
type MusicGenerator struct {
	sr       beep.SampleRate
	pos      int
	noteLen  int
	attack   int
	phase    float64
	lastNote int
}

// NewMusicGenerator creates the fallback background loop
func NewMusicGenerator(sr beep.SampleRate) *MusicGenerator {
	return &MusicGenerator{
		sr:      sr,
		noteLen: sr.N(350 * time.Millisecond),
		attack:  sr.N(10 * time.Millisecond),
	}
}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (g.pos / g.noteLen) % len(themeNotes)
		inNote := g.pos % g.noteLen
		if note != g.lastNote {
			g.phase = 0
			g.lastNote = note
		}

		env := math.Exp(-float64(inNote) / float64(g.noteLen) * 4)
		if inNote < g.attack {
			env *= float64(inNote) / float64(g.attack)
		}

		// sine plus a soft octave
		sample := 0.2 * env * (math.Sin(2*math.Pi*g.phase) + 0.3*math.Sin(4*math.Pi*g.phase))

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += themeNotes[note] / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error {
	return nil
}
