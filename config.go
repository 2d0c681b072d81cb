package boing

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default timing values used whenever a config field is missing or invalid.
const (
	DefaultFPS             = 60
	DefaultPressDuration   = 0.25
	DefaultReleaseDuration = 1.0
	DefaultCooldown        = 4.0 / 60
)

// CharacterConfigFile is the name of the per-character config inside a
// character directory.
const CharacterConfigFile = "config.yml"

// TimingConfig drives frame generation and the animator. It is immutable for
// the lifetime of a FrameCache; changing it requires a rebuild.
type TimingConfig struct {
	FPS             int           // frames per second, > 0
	PressDuration   float64       // seconds, >= 0
	ReleaseDuration float64       // seconds, >= 0
	Cooldown        float64       // minimum seconds between accepted presses
	Echo            bool          // allow overlapping sound playback
	Easing          EasingProfile // press/release curve pair
}

// DefaultTiming returns the documented defaults.
func DefaultTiming() TimingConfig {
	return TimingConfig{
		FPS:             DefaultFPS,
		PressDuration:   DefaultPressDuration,
		ReleaseDuration: DefaultReleaseDuration,
		Cooldown:        DefaultCooldown,
		Easing:          EasingElastic,
	}
}

// normalized replaces out-of-range fields with their defaults.
func (t TimingConfig) normalized() TimingConfig {
	d := DefaultTiming()
	if t.FPS <= 0 {
		t.FPS = d.FPS
	}
	if !(t.PressDuration >= 0) {
		t.PressDuration = d.PressDuration
	}
	if !(t.ReleaseDuration >= 0) {
		t.ReleaseDuration = d.ReleaseDuration
	}
	if !(t.Cooldown >= 0) {
		t.Cooldown = d.Cooldown
	}
	if !t.Easing.Valid() {
		t.Easing = d.Easing
	}
	return t
}

// Config is the application config (config.yml next to the executable).
type Config struct {
	Char     string        `yaml:"char"`     // character directory
	FPS      int           `yaml:"fps"`      // frame rate
	Topmost  bool          `yaml:"topmost"`  // keep the window above others
	Echo     bool          `yaml:"echo"`     // sound may overlap itself
	Cooldown float64       `yaml:"cooldown"` // seconds between accepted presses
	Easing   EasingProfile `yaml:"easing"`   // "elastic" or "piecewise"
}

// DefaultConfig returns the application defaults.
func DefaultConfig() Config {
	return Config{
		Char:     "./miss_qing",
		FPS:      DefaultFPS,
		Topmost:  true,
		Echo:     false,
		Cooldown: DefaultCooldown,
		Easing:   EasingElastic,
	}
}

// CharacterConfig describes one character directory.
type CharacterConfig struct {
	Sound          string  `yaml:"sound"`                  // sound file, relative to the directory
	Image          string  `yaml:"image"`                  // resting sprite
	ImageActive    string  `yaml:"image_active,omitempty"` // optional pressed sprite
	Icon           string  `yaml:"icon,omitempty"`         // optional window icon
	ColorKey       string  `yaml:"miyu_color"`             // color treated as transparent
	Duration       float64 `yaml:"duration"`               // release phase seconds
	DurationActive float64 `yaml:"duration_active"`        // press phase seconds
}

// DefaultCharacterConfig returns the character defaults.
func DefaultCharacterConfig() CharacterConfig {
	return CharacterConfig{
		Sound:          "sndReverbClack.wav",
		Image:          "Miss Qing.png",
		ColorKey:       "#AD0FA1",
		Duration:       DefaultReleaseDuration,
		DurationActive: DefaultPressDuration,
	}
}

// Timing combines the app and character configs into a TimingConfig.
func (c Config) Timing(cc CharacterConfig) TimingConfig {
	return TimingConfig{
		FPS:             c.FPS,
		PressDuration:   cc.DurationActive,
		ReleaseDuration: cc.Duration,
		Cooldown:        c.Cooldown,
		Echo:            c.Echo,
		Easing:          c.Easing,
	}.normalized()
}

// rawConfig mirrors Config with pointer fields so absent keys are detectable.
type rawConfig struct {
	Char     *string  `yaml:"char"`
	FPS      *int     `yaml:"fps"`
	Topmost  *bool    `yaml:"topmost"`
	Echo     *bool    `yaml:"echo"`
	Cooldown *float64 `yaml:"cooldown"`
	Easing   *string  `yaml:"easing"`
}

type rawCharacterConfig struct {
	Sound          *string  `yaml:"sound"`
	Image          *string  `yaml:"image"`
	ImageActive    *string  `yaml:"image_active"`
	Icon           *string  `yaml:"icon"`
	ColorKey       *string  `yaml:"miyu_color"`
	Duration       *float64 `yaml:"duration"`
	DurationActive *float64 `yaml:"duration_active"`
}

// ParseConfig decodes YAML into a Config. Missing or invalid fields, including
// fields of the wrong type, take their default values; invalid values are
// logged. A malformed document returns the defaults together with the error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	var raw rawConfig
	if err := decodeRaw(data, &raw, "config"); err != nil {
		return cfg, fmt.Errorf("boing: parse config: %w", err)
	}

	if raw.Char != nil && *raw.Char != "" {
		cfg.Char = *raw.Char
	}
	if raw.FPS != nil {
		if *raw.FPS > 0 {
			cfg.FPS = *raw.FPS
		} else {
			log.Printf("[boing] config: fps %d is not positive, using %d", *raw.FPS, cfg.FPS)
		}
	}
	if raw.Topmost != nil {
		cfg.Topmost = *raw.Topmost
	}
	if raw.Echo != nil {
		cfg.Echo = *raw.Echo
	}
	if raw.Cooldown != nil {
		if *raw.Cooldown >= 0 {
			cfg.Cooldown = *raw.Cooldown
		} else {
			log.Printf("[boing] config: cooldown %v is negative, using %v", *raw.Cooldown, cfg.Cooldown)
		}
	}
	if raw.Easing != nil {
		if p := EasingProfile(strings.ToLower(*raw.Easing)); p.Valid() {
			cfg.Easing = p
		} else {
			log.Printf("[boing] config: unknown easing %q, using %q", *raw.Easing, cfg.Easing)
		}
	}
	return cfg, nil
}

// ParseCharacterConfig decodes YAML into a CharacterConfig, defaulting field
// by field like ParseConfig.
func ParseCharacterConfig(data []byte) (CharacterConfig, error) {
	cc := DefaultCharacterConfig()
	var raw rawCharacterConfig
	if err := decodeRaw(data, &raw, "character config"); err != nil {
		return cc, fmt.Errorf("boing: parse character config: %w", err)
	}

	setString(&cc.Sound, raw.Sound)
	setString(&cc.Image, raw.Image)
	setString(&cc.ImageActive, raw.ImageActive)
	setString(&cc.Icon, raw.Icon)
	if raw.ColorKey != nil {
		if _, err := ParseHexColor(*raw.ColorKey); err == nil {
			cc.ColorKey = *raw.ColorKey
		} else {
			log.Printf("[boing] character config: %v, using %s", err, cc.ColorKey)
		}
	}
	setDuration(&cc.Duration, raw.Duration, "duration")
	setDuration(&cc.DurationActive, raw.DurationActive, "duration_active")
	return cc, nil
}

// decodeRaw unmarshals a YAML mapping into raw, a pointer to a struct of
// pointer fields. Keys are decoded one at a time: a key whose value has the
// wrong type is logged and left nil so it takes its default, and the rest of
// the document still applies. Only a malformed document is an error.
func decodeRaw(data []byte, raw any, what string) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", root.Line)
	}

	dst := reflect.ValueOf(raw).Elem()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		one := &yaml.Node{Kind: yaml.MappingNode, Content: root.Content[i : i+2]}
		tmp := reflect.New(dst.Type())
		if err := one.Decode(tmp.Interface()); err != nil {
			log.Printf("[boing] %s: %s: %v, using default", what, key.Value, err)
			continue
		}
		for f := 0; f < dst.NumField(); f++ {
			if v := tmp.Elem().Field(f); !v.IsNil() {
				dst.Field(f).Set(v)
			}
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setDuration(dst *float64, v *float64, name string) {
	if v == nil {
		return
	}
	if *v >= 0 {
		*dst = *v
		return
	}
	log.Printf("[boing] character config: %s %v is negative, using %v", name, *v, *dst)
}

// LoadConfig reads the application config at path. A missing file yields the
// defaults and no error; any other failure yields the defaults and an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("boing: read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// LoadCharacterConfig reads dir/config.yml with the same fallback rules as
// LoadConfig.
func LoadCharacterConfig(dir string) (CharacterConfig, error) {
	path := filepath.Join(dir, CharacterConfigFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultCharacterConfig(), nil
	}
	if err != nil {
		return DefaultCharacterConfig(), fmt.Errorf("boing: read character config %s: %w", path, err)
	}
	return ParseCharacterConfig(data)
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("boing: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("boing: write config %s: %w", path, err)
	}
	return nil
}

// ResolveCharDir returns the character directory for cfg. Relative paths are
// resolved against the directory holding the application config.
func ResolveCharDir(configPath string, cfg Config) string {
	if filepath.IsAbs(cfg.Char) {
		return cfg.Char
	}
	return filepath.Join(filepath.Dir(configPath), cfg.Char)
}

// ParseHexColor parses "#RGB" or "#RRGGBB" (the leading '#' is optional) into
// an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("boing: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("boing: invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
