package alert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// speakerRate is the fixed output rate; files at other rates are resampled.
const speakerRate beep.SampleRate = 44100

// SupportedExtensions lists the audio formats BeepPlayer can decode.
var SupportedExtensions = []string{".wav", ".mp3", ".flac", ".ogg"}

// BeepPlayer plays audio files on the default output device.
type BeepPlayer struct {
	initOnce sync.Once
	initErr  error

	mu   sync.Mutex
	gain *effects.Gain // gain stage of the latest playback
}

// NewBeepPlayer returns a player. The audio device is opened on first use.
func NewBeepPlayer() *BeepPlayer { return &BeepPlayer{} }

func (p *BeepPlayer) init() error {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return p.initErr
}

// Play decodes path and starts playback at volume (0..1).
func (p *BeepPlayer) Play(path string, volume float64) (<-chan struct{}, error) {
	if err := p.init(); err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	stream, format, err := decode(path)
	if err != nil {
		return nil, err
	}
	var s beep.Streamer = stream
	if format.SampleRate != speakerRate {
		s = beep.Resample(4, format.SampleRate, speakerRate, s)
	}
	gain := &effects.Gain{Streamer: s, Gain: volume - 1}
	p.mu.Lock()
	p.gain = gain
	p.mu.Unlock()

	done := make(chan struct{})
	speaker.Play(beep.Seq(gain, beep.Callback(func() {
		_ = stream.Close()
		close(done)
	})))
	return done, nil
}

// SetVolume changes the gain of the sound currently playing.
func (p *BeepPlayer) SetVolume(volume float64) {
	p.mu.Lock()
	gain := p.gain
	p.mu.Unlock()
	if gain == nil {
		return
	}
	speaker.Lock()
	gain.Gain = volume - 1
	speaker.Unlock()
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		err = fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, err
	}
	return stream, format, nil
}
