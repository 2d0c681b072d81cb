package boing

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultWindowPosition is used until a position has been saved.
var defaultWindowPosition = image.Pt(100, 100)

// RunConfig configures Run.
type RunConfig struct {
	// ConfigPath is the application config. It is created with the defaults
	// when missing.
	ConfigPath string

	// Title is the window title. Defaults to "boing".
	Title string

	// AppName names the persisted preferences. Defaults to "boing".
	AppName string

	// Debug logs frame cache stats and draws a state overlay.
	Debug bool

	// Script, if set, replays scripted input.
	Script *TestRunner

	// ScreenshotDir receives script screenshots.
	ScreenshotDir string

	// Watch reloads the character when its files change.
	Watch bool
}

// LoadCharacter reads the application config at configPath, the character
// config it points to, and the character's asset. Problems are logged and
// replaced by defaults; it never fails.
func LoadCharacter(configPath string) (Config, CharacterConfig, *Asset) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Printf("[boing] %v", err)
	}
	dir := ResolveCharDir(configPath, cfg)
	cc, err := LoadCharacterConfig(dir)
	if err != nil {
		log.Printf("[boing] %v", err)
	}
	return cfg, cc, LoadAsset(dir, cc)
}

// Host runs a Widget in a borderless, transparent Ebitengine window. It is
// the widget's display surface, window mover and focuser, and drives the
// widget's timers from its Update loop.
type Host struct {
	rc      RunConfig
	cfg     Config
	widget  *Widget
	queue   *TimerQueue
	input   InputSource
	watcher *Watcher
	prefs   *PrefsStore

	// watchDir is the character directory the watcher covers.
	watchDir string

	overlay *debugOverlay

	frame      *image.NRGBA
	images     map[*image.NRGBA]*ebiten.Image
	topmost    bool
	lastPos    image.Point
	quit       atomic.Bool
	scriptDone bool

	// OnScriptDone is called once, from Update, after RunConfig.Script has
	// run its last step.
	OnScriptDone func()
}

// NewHost loads the config and character and builds the widget. A missing
// config is seeded with the defaults; failing to write it is the only error.
// NewHost does not open the window; call Run for that.
func NewHost(rc RunConfig) (*Host, error) {
	if rc.ConfigPath == "" {
		rc.ConfigPath = "config.yml"
	}
	if rc.Title == "" {
		rc.Title = "boing"
	}
	if rc.AppName == "" {
		rc.AppName = "boing"
	}

	if _, err := os.Stat(rc.ConfigPath); errors.Is(err, fs.ErrNotExist) {
		if err := SaveConfig(rc.ConfigPath, DefaultConfig()); err != nil {
			return nil, err
		}
		log.Printf("[boing] wrote default config to %s", rc.ConfigPath)
	}

	cfg, cc, asset := LoadCharacter(rc.ConfigPath)
	h := &Host{
		rc:      rc,
		cfg:     cfg,
		input:   ebitenInput{},
		images:  make(map[*image.NRGBA]*ebiten.Image),
		topmost: cfg.Topmost,
		lastPos: defaultWindowPosition,
	}

	prefs, err := OpenPrefsStore(rc.AppName)
	if err != nil {
		log.Printf("[boing] %v", err)
	}
	h.prefs = prefs
	if p, ok, err := prefs.Load(); err != nil {
		log.Printf("[boing] %v", err)
	} else if ok {
		h.lastPos = p.Position()
		if p.Topmost != nil {
			h.topmost = *p.Topmost
		}
	}

	clock := SystemClock{}
	h.queue = NewTimerQueue(clock)
	h.widget = NewWidget(WidgetOptions{
		Asset:         asset,
		Timing:        cfg.Timing(cc),
		Sound:         LoadSound(asset),
		Clock:         clock,
		Scheduler:     h.queue,
		Sink:          h,
		Mover:         h,
		Focuser:       h,
		Debug:         rc.Debug,
		ScreenshotDir: rc.ScreenshotDir,
	})
	h.widget.Input().OnContextMenu = func(image.Point) { h.Reload() }

	if rc.Watch {
		h.watch(ResolveCharDir(rc.ConfigPath, cfg))
	}
	if rc.Debug {
		h.overlay = newDebugOverlay()
	}
	return h, nil
}

// Run opens the window and blocks until it is closed or Quit is called.
func Run(rc RunConfig) error {
	h, err := NewHost(rc)
	if err != nil {
		return err
	}
	return h.Run()
}

// Widget returns the hosted widget.
func (h *Host) Widget() *Widget { return h.widget }

// Run opens the window and blocks until it is closed or Quit is called.
func (h *Host) Run() error {
	defer h.close()

	ebiten.SetWindowTitle(h.rc.Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowPosition(h.lastPos.X, h.lastPos.Y)
	h.applyWindow()

	err := ebiten.RunGameWithOptions(h, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
	})
	if err != nil {
		return fmt.Errorf("boing: run: %w", err)
	}
	return nil
}

// applyWindow pushes the widget's canvas, tick rate, icon and topmost flag to
// the window.
func (h *Host) applyWindow() {
	c := h.widget.Canvas()
	ebiten.SetWindowSize(c.Width, c.Height)
	ebiten.SetTPS(2 * h.widget.Animator().Timing().FPS)
	ebiten.SetWindowFloating(h.topmost)

	icon := h.widget.Asset().Icon
	if icon == nil {
		icon = h.widget.Asset().Resting
	}
	ebiten.SetWindowIcon([]image.Image{icon})
}

// Reload re-reads the config and character from disk and swaps them in.
func (h *Host) Reload() {
	cfg, cc, asset := LoadCharacter(h.rc.ConfigPath)
	prev := h.cfg
	h.cfg = cfg
	h.syncConfig(prev, cfg)
	h.widget.Reload(asset, cfg.Timing(cc), LoadSound(asset))
	h.queue.Clear()
	h.dropImages()
	h.applyWindow()
}

// Summon brings the window to the front and replays the release animation.
func (h *Host) Summon() { h.widget.Summon() }

// ToggleTopmost flips the always-on-top flag and remembers it in both the
// config file and the saved prefs.
func (h *Host) ToggleTopmost() {
	h.setTopmost(!h.topmost)
	ebiten.SetWindowFloating(h.topmost)
}

func (h *Host) setTopmost(v bool) {
	h.topmost = v
	h.cfg.Topmost = v
	if err := SaveConfig(h.rc.ConfigPath, h.cfg); err != nil {
		log.Printf("[boing] %v", err)
	}
	h.savePrefs()
}

// syncConfig applies config changes that live in the host rather than the
// widget: the watched character directory and the topmost flag. An edited
// topmost value wins over the saved prefs.
func (h *Host) syncConfig(prev, cfg Config) {
	if cfg.Topmost != prev.Topmost {
		h.topmost = cfg.Topmost
		h.savePrefs()
	}
	if !h.rc.Watch {
		return
	}
	if dir := ResolveCharDir(h.rc.ConfigPath, cfg); dir != h.watchDir {
		h.watch(dir)
	}
}

// watch replaces the watcher with one covering the config directory and dir.
func (h *Host) watch(dir string) {
	if h.watcher != nil {
		_ = h.watcher.Close()
		h.watcher = nil
	}
	h.watchDir = dir
	w, err := NewWatcher(filepath.Dir(h.rc.ConfigPath), dir)
	if err != nil {
		log.Printf("[boing] watch %s: %v", dir, err)
		return
	}
	h.watcher = w
}

// Quit ends Run after the current frame. Safe to call from any goroutine.
func (h *Host) Quit() { h.quit.Store(true) }

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.quit.Load() {
		return ebiten.Termination
	}
	if h.rc.Script != nil && !h.scriptDone {
		h.rc.Script.Step(h.widget)
		if h.rc.Script.Done() {
			h.scriptDone = true
			if h.OnScriptDone != nil {
				h.OnScriptDone()
			}
		}
	}
	h.widget.Input().Poll(h.input)
	h.queue.RunDue()
	h.drainWatcher()

	x, y := ebiten.WindowPosition()
	h.lastPos = image.Pt(x, y)

	if h.overlay != nil {
		h.overlay.update(1/float64(ebiten.TPS()), h.widget.Animator())
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Clear()
	if h.frame != nil {
		at := h.widget.Canvas().Anchor(h.frame)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(at.X), float64(at.Y))
		screen.DrawImage(h.ebitenImage(h.frame), op)
	}
	if h.overlay != nil {
		h.overlay.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (h *Host) Layout(_, _ int) (int, int) {
	c := h.widget.Canvas()
	return c.Width, c.Height
}

// ShowFrame implements FrameSink.
func (h *Host) ShowFrame(frame *image.NRGBA) { h.frame = frame }

// WindowPosition implements WindowMover.
func (h *Host) WindowPosition() image.Point {
	x, y := ebiten.WindowPosition()
	return image.Pt(x, y)
}

// SetWindowPosition implements WindowMover.
func (h *Host) SetWindowPosition(p image.Point) {
	ebiten.SetWindowPosition(p.X, p.Y)
	h.lastPos = p
}

// Focus implements Focuser. Re-asserting the floating flag raises the window.
func (h *Host) Focus() {
	if ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowFloating(h.topmost)
}

// ebitenImage returns the GPU image for frame, uploading it on first use.
// Frames are immutable, so the upload is cached until the next reload.
func (h *Host) ebitenImage(frame *image.NRGBA) *ebiten.Image {
	if img, ok := h.images[frame]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(frame)
	h.images[frame] = img
	return img
}

func (h *Host) dropImages() {
	for k, img := range h.images {
		img.Deallocate()
		delete(h.images, k)
	}
}

func (h *Host) drainWatcher() {
	if h.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path := <-h.watcher.Events:
			log.Printf("[boing] changed: %s", path)
			changed = true
		case err := <-h.watcher.Errors:
			log.Printf("[boing] watch: %v", err)
		default:
			if changed {
				h.Reload()
			}
			return
		}
	}
}

func (h *Host) savePrefs() {
	topmost := h.topmost
	if err := h.prefs.Save(WindowPrefs{X: h.lastPos.X, Y: h.lastPos.Y, Topmost: &topmost}); err != nil {
		log.Printf("[boing] %v", err)
	}
}

func (h *Host) close() {
	h.savePrefs()
	if h.watcher != nil {
		_ = h.watcher.Close()
	}
}
