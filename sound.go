package boing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is used when no audio context exists yet.
const DefaultSampleRate = 48000

var (
	// ErrNoSound is returned when an asset carries no sound data.
	ErrNoSound = errors.New("boing: no sound data")
	// ErrUnsupportedAudio is returned for sound files with an unknown extension.
	ErrUnsupportedAudio = errors.New("boing: unsupported audio format")
)

// AudioSound plays a decoded clip through Ebitengine's audio context. Every
// Play starts a fresh player, so overlapping playback is possible; Stop
// silences all of them. Playback runs on the audio goroutine, so Play never
// blocks the animation loop.
type AudioSound struct {
	ctx     *audio.Context
	pcm     []byte
	players []*audio.Player
}

// AudioContext returns the process-wide audio context, creating it at
// DefaultSampleRate on first use.
func AudioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(DefaultSampleRate)
}

// NewAudioSound decodes data (a .wav, .mp3 or .ogg file named name) into PCM
// at the context's sample rate.
func NewAudioSound(ctx *audio.Context, name string, data []byte) (*AudioSound, error) {
	if len(data) == 0 {
		return nil, ErrNoSound
	}
	decode, err := decoderFor(name)
	if err != nil {
		return nil, err
	}

	stream, err := decode(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("boing: decode %s: %w", name, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("boing: read decoded %s: %w", name, err)
	}
	return &AudioSound{ctx: ctx, pcm: pcm}, nil
}

type decodeFunc func(sampleRate int, r io.ReadSeeker) (io.Reader, error)

// decoderFor picks a decoder from the file extension.
func decoderFor(name string) (decodeFunc, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return func(sr int, r io.ReadSeeker) (io.Reader, error) {
			return wav.DecodeWithSampleRate(sr, r)
		}, nil
	case ".mp3":
		return func(sr int, r io.ReadSeeker) (io.Reader, error) {
			return mp3.DecodeWithSampleRate(sr, r)
		}, nil
	case ".ogg":
		return func(sr int, r io.ReadSeeker) (io.Reader, error) {
			return vorbis.DecodeWithSampleRate(sr, r)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAudio, name)
	}
}

// Play starts a new player. Failures are logged and swallowed.
func (s *AudioSound) Play() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[boing] sound: play: %v", r)
		}
	}()
	if err := s.ctx.Err(); err != nil {
		log.Printf("[boing] sound: %v", err)
		return
	}
	s.prune()
	p := s.ctx.NewPlayerFromBytes(s.pcm)
	p.Play()
	s.players = append(s.players, p)
}

// Stop pauses every player started by Play.
func (s *AudioSound) Stop() {
	for _, p := range s.players {
		p.Pause()
	}
	clear(s.players)
	s.players = s.players[:0]
}

// prune drops players that have finished.
func (s *AudioSound) prune() {
	n := 0
	for _, p := range s.players {
		if p.IsPlaying() {
			s.players[n] = p
			n++
		}
	}
	clear(s.players[n:])
	s.players = s.players[:n]
}

// LoadSound builds the sound for asset, falling back to silence when there is
// no sound or it cannot be decoded.
func LoadSound(asset *Asset) Sound {
	if asset == nil || len(asset.SoundData) == 0 {
		return silentSound{}
	}
	s, err := NewAudioSound(AudioContext(), asset.SoundName, asset.SoundData)
	if err != nil {
		log.Printf("[boing] sound: %v", err)
		return silentSound{}
	}
	return s
}
