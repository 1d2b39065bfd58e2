package audio

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
)

// resampleQuality is the beep resampler quality for files not at the speaker rate
const resampleQuality = 4

// openMP3 decodes the mp3 at path; the caller closes the returned streamer
func openMP3(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// loadBuffer decodes a short sample fully into memory at rate so it can be replayed cheaply
func loadBuffer(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	streamer, format, err := openMP3(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	out := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(out)
	buf.Append(resampled(streamer, format.SampleRate, rate))
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf, nil
}

// loopMP3 returns an endless stream of the mp3 at path, converted to rate
func loopMP3(path string, rate beep.SampleRate) (beep.Streamer, func() error, error) {
	streamer, format, err := openMP3(path)
	if err != nil {
		return nil, nil, err
	}
	return resampled(beep.Loop(-1, streamer), format.SampleRate, rate), streamer.Close, nil
}

func resampled(s beep.Streamer, from, to beep.SampleRate) beep.Streamer {
	if from == to {
		return s
	}
	return beep.Resample(resampleQuality, from, to, s)
}
