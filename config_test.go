package boing

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty config = %+v, want defaults", cfg)
	}
}

func TestParseConfigFields(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want func(*Config)
	}{
		{"char", "char: ./other", func(c *Config) { c.Char = "./other" }},
		{"fps", "fps: 30", func(c *Config) { c.FPS = 30 }},
		{"zero fps keeps default", "fps: 0", func(*Config) {}},
		{"negative fps keeps default", "fps: -2", func(*Config) {}},
		{"topmost off", "topmost: false", func(c *Config) { c.Topmost = false }},
		{"echo", "echo: true", func(c *Config) { c.Echo = true }},
		{"cooldown", "cooldown: 0.5", func(c *Config) { c.Cooldown = 0.5 }},
		{"negative cooldown keeps default", "cooldown: -1", func(*Config) {}},
		{"easing", "easing: Piecewise", func(c *Config) { c.Easing = EasingPiecewise }},
		{"unknown easing keeps default", "easing: wobbly", func(*Config) {}},
		{"empty char keeps default", `char: ""`, func(*Config) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseConfig: %v", err)
			}
			want := DefaultConfig()
			tt.want(&want)
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseConfigInvalidYAML(t *testing.T) {
	cfg, err := ParseConfig([]byte("fps: [1, 2"))
	if err == nil {
		t.Error("expected a parse error")
	}
	if cfg != DefaultConfig() {
		t.Error("parse error should still return defaults")
	}
}

func TestParseConfigWrongTypeKeepsOtherFields(t *testing.T) {
	cfg, err := ParseConfig([]byte("fps: sixty\necho: true\ncooldown: 0.5\nchar: ./other\n"))
	if err != nil {
		t.Fatalf("a mistyped field should not fail the parse: %v", err)
	}
	want := DefaultConfig()
	want.Echo = true
	want.Cooldown = 0.5
	want.Char = "./other"
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestParseConfigWrongTypeUsesDefault(t *testing.T) {
	cfg, err := ParseConfig([]byte("cooldown: long\ntopmost: maybe\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("mistyped fields should keep their defaults, got %+v", cfg)
	}
}

func TestParseConfigNotAMapping(t *testing.T) {
	cfg, err := ParseConfig([]byte("- a\n- b\n"))
	if err == nil {
		t.Error("expected an error for a list document")
	}
	if cfg != DefaultConfig() {
		t.Error("error should still return defaults")
	}
}

func TestParseCharacterConfigWrongTypeKeepsOtherFields(t *testing.T) {
	cc, err := ParseCharacterConfig([]byte("duration: long\nduration_active: 0.5\nimage: a.png\n"))
	if err != nil {
		t.Fatalf("a mistyped field should not fail the parse: %v", err)
	}
	want := DefaultCharacterConfig()
	want.DurationActive = 0.5
	want.Image = "a.png"
	if cc != want {
		t.Errorf("got %+v, want %+v", cc, want)
	}
}

func TestParseCharacterConfig(t *testing.T) {
	data := []byte(`
sound: boing.ogg
image: idle.png
image_active: squish.png
miyu_color: "#00FF00"
duration: 0.8
duration_active: -1
`)
	cc, err := ParseCharacterConfig(data)
	if err != nil {
		t.Fatalf("ParseCharacterConfig: %v", err)
	}
	want := DefaultCharacterConfig()
	want.Sound = "boing.ogg"
	want.Image = "idle.png"
	want.ImageActive = "squish.png"
	want.ColorKey = "#00FF00"
	want.Duration = 0.8
	if cc != want {
		t.Errorf("got %+v, want %+v", cc, want)
	}
}

func TestParseCharacterConfigBadColor(t *testing.T) {
	cc, err := ParseCharacterConfig([]byte(`miyu_color: "purple"`))
	if err != nil {
		t.Fatal(err)
	}
	if cc.ColorKey != DefaultCharacterConfig().ColorKey {
		t.Errorf("ColorKey = %q, want default", cc.ColorKey)
	}
}

func TestConfigTiming(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 30
	cfg.Echo = true
	cc := DefaultCharacterConfig()
	cc.Duration = 2
	cc.DurationActive = 0.5

	got := cfg.Timing(cc)
	want := TimingConfig{
		FPS:             30,
		PressDuration:   0.5,
		ReleaseDuration: 2,
		Cooldown:        DefaultCooldown,
		Echo:            true,
		Easing:          EasingElastic,
	}
	if got != want {
		t.Errorf("Timing = %+v, want %+v", got, want)
	}
}

func TestTimingNormalized(t *testing.T) {
	got := TimingConfig{FPS: -1, PressDuration: -1, ReleaseDuration: -2, Cooldown: -3, Easing: "x"}.normalized()
	if got != DefaultTiming() {
		t.Errorf("normalized = %+v, want defaults", got)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Error("missing file should give defaults")
	}

	cc, err := LoadCharacterConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing character config should not error: %v", err)
	}
	if cc != DefaultCharacterConfig() {
		t.Error("missing character config should give defaults")
	}
}

func TestSaveConfigThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := DefaultConfig()
	cfg.FPS = 24
	cfg.Easing = EasingPiecewise
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
}

func TestLoadCharacterConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CharacterConfigFile), []byte("image: a.png\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cc, err := LoadCharacterConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cc.Image != "a.png" || cc.Sound != DefaultCharacterConfig().Sound {
		t.Errorf("got %+v", cc)
	}
}

func TestResolveCharDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "char")
	tests := []struct {
		config, char, want string
	}{
		{filepath.Join("app", "config.yml"), "./miss_qing", filepath.Join("app", "miss_qing")},
		{"config.yml", "chars/a", filepath.Join("chars", "a")},
		{filepath.Join("app", "config.yml"), abs, abs},
	}
	for _, tt := range tests {
		if got := ResolveCharDir(tt.config, Config{Char: tt.char}); got != tt.want {
			t.Errorf("ResolveCharDir(%q, %q) = %q, want %q", tt.config, tt.char, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#AD0FA1", color.NRGBA{R: 0xAD, G: 0x0F, B: 0xA1, A: 0xFF}, false},
		{"ad0fa1", color.NRGBA{R: 0xAD, G: 0x0F, B: 0xA1, A: 0xFF}, false},
		{"#f0a", color.NRGBA{R: 0xFF, G: 0x00, B: 0xAA, A: 0xFF}, false},
		{" #000000 ", color.NRGBA{A: 0xFF}, false},
		{"#12345", color.NRGBA{}, true},
		{"#GGGGGG", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
