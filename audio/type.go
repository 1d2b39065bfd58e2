package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundClick  SoundType = iota // Conductor typewriter key
	SoundError                   // Wrong letter buzz
	SoundBell                    // Right letter ding
	SoundCoin                    // Round won chime
	SoundWhoosh                  // Round lost
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"click", "error", "bell", "coin", "whoosh"}

func (st SoundType) String() string {
	if st < 0 || st >= soundTypeCount {
		return "unknown"
	}
	return soundNames[st]
}

