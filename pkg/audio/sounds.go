package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Sound is a fully decoded clip, resampled to the Manager's sample rate.
type Sound struct {
	Source string
	Format beep.Format
	Buffer *beep.Buffer
}

func (s *Sound) Duration() time.Duration {
	return s.Format.SampleRate.D(s.Buffer.Len())
}

// Sink is the output device playbacks are mixed into.
type Sink interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(streamers ...beep.Streamer)
	Close()
}

// SpeakerSink sends audio to the default output device through the beep speaker.
type SpeakerSink struct{}

func (SpeakerSink) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (SpeakerSink) Play(streamers ...beep.Streamer) { speaker.Play(streamers...) }

func (SpeakerSink) Close() { speaker.Close() }
