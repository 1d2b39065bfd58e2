package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// Environment variables read by LoadAudioConfig
const (
	EnvAudioEnabled   = "HANGMAN_AUDIO_ENABLED"
	EnvMasterVolume   = "HANGMAN_MASTER_VOLUME"
	EnvMusicVolume    = "HANGMAN_MUSIC_VOLUME"
	EnvSFXVolumes     = "HANGMAN_SFX_VOLUMES"
	EnvSampleRate     = "HANGMAN_SAMPLE_RATE"
	EnvMusicFile      = "HANGMAN_MUSIC_FILE"
	EnvTypewriterFile = "HANGMAN_TYPEWRITER_FILE"
)

// AudioConfig holds volume levels and optional sample files
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	MusicVolume   float64
	EffectVolumes map[SoundType]float64
	SampleRate    int

	// mp3 files; empty means the synthesized fallback
	MusicFile      string
	TypewriterFile string
}

// DefaultAudioConfig returns the built-in audio settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		MusicVolume:  0.3,
		EffectVolumes: map[SoundType]float64{
			SoundClick:  0.4,
			SoundError:  0.8,
			SoundBell:   0.7,
			SoundCoin:   0.6,
			SoundWhoosh: 0.6,
		},
		SampleRate: 44100,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volumes are 0-100 in the environment
	if v, ok := percentEnv(EnvMasterVolume); ok {
		cfg.MasterVolume = v
	}
	if v, ok := percentEnv(EnvMusicVolume); ok {
		cfg.MusicVolume = v
	}

	if effectVols := os.Getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for st := SoundType(0); st < soundTypeCount; st++ {
				if v, ok := volumes[st.String()]; ok {
					cfg.EffectVolumes[st] = clamp01(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	cfg.MusicFile = os.Getenv(EnvMusicFile)
	cfg.TypewriterFile = os.Getenv(EnvTypewriterFile)

	return cfg
}

func percentEnv(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return clamp01(float64(val) / 100.0), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
