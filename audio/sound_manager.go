package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// speakerBuffer is the latency of the speaker's output buffer
const speakerBuffer = 100 * time.Millisecond

// SoundManager manages all game audio: one background loop plus short effects
type SoundManager struct {
	mu     sync.Mutex
	config *AudioConfig
	log    zerolog.Logger
	rate   beep.SampleRate

	mixer      *beep.Mixer
	music      *beep.Ctrl
	closeMusic func() error
	typewriter *beep.Buffer

	muted       bool
	initialized bool
}

// Option configures a SoundManager
type Option func(*SoundManager)

// WithLogger attaches a logger
func WithLogger(l zerolog.Logger) Option {
	return func(sm *SoundManager) { sm.log = l.With().Str("component", "audio").Logger() }
}

// NewSoundManager creates a sound manager; nil cfg means DefaultAudioConfig.
// A typewriter sample that cannot be loaded falls back to a synthesized click.
func NewSoundManager(cfg *AudioConfig, opts ...Option) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	sm := &SoundManager{
		config: cfg,
		log:    zerolog.Nop(),
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		muted:  !cfg.Enabled,
	}
	for _, opt := range opts {
		opt(sm)
	}

	if cfg.TypewriterFile != "" {
		buf, err := loadBuffer(cfg.TypewriterFile, sm.rate)
		if err != nil {
			sm.log.Warn().Err(err).Msg("typewriter sample unavailable, using synthesized click")
		} else {
			sm.typewriter = buf
		}
	}
	return sm
}

// Initialize opens the speaker. Disabled audio is not an error.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.config.Enabled {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(speakerBuffer)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug().Int("sample_rate", int(sm.rate)).Msg("speaker initialized")
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	if sm.closeMusic != nil {
		if err := sm.closeMusic(); err != nil {
			sm.log.Warn().Err(err).Msg("closing music file")
		}
		sm.closeMusic = nil
	}
	sm.music = nil
	sm.initialized = false
}

// StartMusic starts or resumes the background loop
func (sm *SoundManager) StartMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.music != nil {
		speaker.Lock()
		sm.music.Paused = sm.muted
		speaker.Unlock()
		return
	}

	vol := sm.config.MusicVolume * sm.config.MasterVolume
	sm.music = &beep.Ctrl{Streamer: newVolume(sm.musicStream(), vol), Paused: sm.muted}

	speaker.Lock()
	sm.mixer.Add(sm.music)
	speaker.Unlock()
}

// StopMusic pauses the background loop
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Paused = true
	speaker.Unlock()
}

// musicStream opens the configured music file or falls back to the synthesized loop
func (sm *SoundManager) musicStream() beep.Streamer {
	if sm.config.MusicFile != "" {
		s, closer, err := loopMP3(sm.config.MusicFile, sm.rate)
		if err == nil {
			sm.closeMusic = closer
			return s
		}
		sm.log.Warn().Err(err).Msg("music file unavailable, using synthesized loop")
	}
	return NewMusicGenerator(sm.rate)
}

// Play queues a one-shot effect; it reports whether anything was queued
func (sm *SoundManager) Play(st SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return false
	}

	s := sm.effect(st)
	if s == nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return true
}

// effect builds the streamer for st
func (sm *SoundManager) effect(st SoundType) beep.Streamer {
	if st == SoundClick && sm.typewriter != nil {
		vol := sm.config.EffectVolumes[SoundClick] * sm.config.MasterVolume
		return newVolume(sm.typewriter.Streamer(0, sm.typewriter.Len()), vol)
	}
	return GetSoundEffect(st, sm.config)
}

// PlayType plays one typewriter key
func (sm *SoundManager) PlayType() { sm.Play(SoundClick) }

// PlayCorrect plays the right-letter ding
func (sm *SoundManager) PlayCorrect() { sm.Play(SoundBell) }

// PlayError plays the wrong-letter buzz
func (sm *SoundManager) PlayError() { sm.Play(SoundError) }

// PlayRoundWon plays the solved-word chime
func (sm *SoundManager) PlayRoundWon() { sm.Play(SoundCoin) }

// PlayRoundLost plays the lost-round whoosh
func (sm *SoundManager) PlayRoundLost() { sm.Play(SoundWhoosh) }

// ToggleMute flips mute, pausing music with it; returns true if sound is now on
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.music != nil {
		speaker.Lock()
		sm.music.Paused = sm.muted
		speaker.Unlock()
	}
	return !sm.muted
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// HasTypewriterSample reports whether the typewriter click comes from a file
func (sm *SoundManager) HasTypewriterSample() bool {
	return sm.typewriter != nil
}
