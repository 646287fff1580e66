package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"focusflow/internal/core/engine"
)

type tone struct {
	freq     float64 // 0 means silence
	duration time.Duration
}

// cueTones are used when no cue file is available.
var cueTones = map[engine.Cue][]tone{
	engine.CueAcknowledge: {{freq: 880, duration: 80 * time.Millisecond}},
	engine.CueBreakStart: {
		{freq: 523.25, duration: 150 * time.Millisecond},
		{duration: 40 * time.Millisecond},
		{freq: 659.25, duration: 150 * time.Millisecond},
		{duration: 40 * time.Millisecond},
		{freq: 783.99, duration: 250 * time.Millisecond},
	},
	engine.CueBackToWork: {
		{freq: 783.99, duration: 150 * time.Millisecond},
		{duration: 40 * time.Millisecond},
		{freq: 783.99, duration: 150 * time.Millisecond},
		{duration: 40 * time.Millisecond},
		{freq: 1046.5, duration: 250 * time.Millisecond},
	},
}

func synthesizeCue(cue engine.Cue) *beep.Buffer {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)
	for _, t := range cueTones[cue] {
		samples := SampleRate.N(t.duration)
		if t.freq == 0 {
			buffer.Append(beep.Silence(samples))
			continue
		}
		sine, err := generators.SineTone(SampleRate, t.freq)
		if err != nil {
			buffer.Append(beep.Silence(samples))
			continue
		}
		buffer.Append(beep.Take(samples, sine))
	}
	return buffer
}
