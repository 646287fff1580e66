// Package audio plays the engine's sound cues through the system speaker.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"go.uber.org/zap"

	"focusflow/internal/core/engine"
)

// SampleRate is the rate the speaker is initialized with.
const SampleRate beep.SampleRate = 44100

// cueFiles maps cues to optional Ogg Vorbis files inside the sound directory.
var cueFiles = map[engine.Cue]string{
	engine.CueAcknowledge: "button-sound.ogg",
	engine.CueBreakStart:  "break.ogg",
	engine.CueBackToWork:  "backtowork.ogg",
}

// cueVolumes are the relative loudness of each cue.
var cueVolumes = map[engine.Cue]float64{
	engine.CueAcknowledge: 0.5,
	engine.CueBreakStart:  0.7,
	engine.CueBackToWork:  0.7,
}

// Output receives streamers to play.
type Output interface {
	Play(streamer beep.Streamer)
	Clear()
}

// Options configures a Player.
type Options struct {
	Enabled  bool
	Volume   float64 // master volume in [0, 1]
	SoundDir string  // optional directory with cue files
}

// Player implements engine.SoundPlayer. Playback failures are logged and
// never reported to the caller.
type Player struct {
	mu      sync.Mutex
	output  Output
	buffers map[engine.Cue]*beep.Buffer
	enabled bool
	volume  float64
	logger  *zap.Logger
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewPlayer initializes the speaker and loads every cue. When the speaker is
// unavailable the player stays silent.
func NewPlayer(options Options, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		logger.Warn("audio disabled: failed to initialize speaker", zap.Error(speakerErr))
		return newPlayer(nil, options, logger)
	}
	return newPlayer(speakerOutput{}, options, logger)
}

func newPlayer(output Output, options Options, logger *zap.Logger) *Player {
	player := &Player{
		output:  output,
		buffers: make(map[engine.Cue]*beep.Buffer, len(cueFiles)),
		enabled: options.Enabled,
		volume:  clampVolume(options.Volume),
		logger:  logger.Named("audio"),
	}
	for cue := range cueFiles {
		buffer, err := loadCue(cue, options.SoundDir)
		if err != nil {
			player.logger.Debug("using synthesized cue", zap.Stringer("cue", cue), zap.Error(err))
			buffer = synthesizeCue(cue)
		}
		player.buffers[cue] = buffer
	}
	return player
}

// Play restarts the cue from the beginning, interrupting any cue in flight.
func (player *Player) Play(cue engine.Cue) {
	player.mu.Lock()
	defer player.mu.Unlock()

	if !player.enabled || player.output == nil {
		return
	}
	buffer, ok := player.buffers[cue]
	if !ok {
		player.logger.Warn("sound buffer not found", zap.Stringer("cue", cue))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			player.logger.Warn("sound playback failed", zap.Stringer("cue", cue), zap.Any("panic", r))
		}
	}()
	player.output.Clear()
	player.output.Play(withVolume(buffer.Streamer(0, buffer.Len()), cueVolumes[cue]*player.volume))
}

// SetEnabled turns playback on or off.
func (player *Player) SetEnabled(enabled bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.enabled = enabled
}

// SetVolume changes the master volume.
func (player *Player) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume = clampVolume(volume)
}

func loadCue(cue engine.Cue, dir string) (*beep.Buffer, error) {
	if dir == "" {
		return nil, fmt.Errorf("no sound directory")
	}
	path := filepath.Join(dir, cueFiles[cue])
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	streamer, format, err := vorbis.Decode(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		source = beep.Resample(4, format.SampleRate, SampleRate, streamer)
	}
	format.SampleRate = SampleRate

	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	return buffer, nil
}

// withVolume scales a streamer linearly by gain in [0, 1].
func withVolume(streamer beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: streamer, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: streamer, Base: 2, Volume: math.Log2(gain)}
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}

type speakerOutput struct{}

func (speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

func (speakerOutput) Clear() {
	speaker.Clear()
}
