package boing

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

// Asset is one character's art and sound. Images are bottom-anchored NRGBA
// rasters with binary alpha. An Asset is never mutated; swapping characters
// builds a new one.
type Asset struct {
	Resting  *image.NRGBA // idle sprite
	Active   *image.NRGBA // pressed sprite; same as Resting unless supplied
	Icon     *image.NRGBA // window icon; nil uses Resting
	ColorKey color.NRGBA  // pixels of exactly this color are transparent

	SoundName string // file name, used to pick a decoder
	SoundData []byte // encoded sound; nil if missing
}

// placeholder colors
var (
	placeholderFill  = color.NRGBA{R: 0xF8, G: 0x00, B: 0xF8, A: 0xFF}
	placeholderBlack = color.NRGBA{A: 0xFF}
)

const (
	placeholderSize  = 0x100
	placeholderGlyph = ":("
	placeholderScale = 5
)

// PlaceholderImage returns the image shown when a sprite cannot be loaded: a
// 256x256 magenta square with black top-left and bottom-right quadrants and a
// sad face.
func PlaceholderImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	half := placeholderSize / 2
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderFill), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, half, half), image.NewUniform(placeholderBlack), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(half, half, placeholderSize, placeholderSize), image.NewUniform(placeholderBlack), image.Point{}, draw.Src)

	// basicfont is tiny; draw the glyph small and scale it up pixel-exact.
	face := basicfont.Face7x13
	glyph := image.NewNRGBA(image.Rect(0, 0, face.Advance*len(placeholderGlyph), face.Height))
	d := &font.Drawer{
		Dst:  glyph,
		Src:  image.NewUniform(placeholderFill),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(placeholderGlyph)

	gb := glyph.Bounds()
	dst := image.Rect(0x20, 0x10, 0x20+gb.Dx()*placeholderScale, 0x10+gb.Dy()*placeholderScale)
	draw.NearestNeighbor.Scale(img, dst, glyph, gb, draw.Over, nil)
	return img
}

// PlaceholderAsset returns an asset built around PlaceholderImage with no
// sound.
func PlaceholderAsset() *Asset {
	img := PlaceholderImage()
	return &Asset{Resting: img, Active: img}
}

// LoadAsset loads the character in dir. It never fails: an unreadable sprite
// becomes PlaceholderImage, a missing active sprite falls back to the resting
// one, and a missing sound leaves SoundData nil. Every fallback is logged.
func LoadAsset(dir string, cc CharacterConfig) *Asset {
	key, err := ParseHexColor(cc.ColorKey)
	if err != nil {
		log.Printf("[boing] asset: %v", err)
		key, _ = ParseHexColor(DefaultCharacterConfig().ColorKey)
	}
	a := &Asset{ColorKey: key}

	a.Resting, err = LoadSprite(filepath.Join(dir, cc.Image), key)
	if err != nil {
		log.Printf("[boing] asset: %v, using placeholder", err)
		a.Resting = PlaceholderImage()
	}

	a.Active = a.Resting
	if cc.ImageActive != "" {
		a.Active, err = LoadSprite(filepath.Join(dir, cc.ImageActive), key)
		if err != nil {
			log.Printf("[boing] asset: %v, using placeholder", err)
			a.Active = PlaceholderImage()
		}
	}

	if cc.Icon != "" {
		icon, err := loadImage(filepath.Join(dir, cc.Icon))
		if err != nil {
			log.Printf("[boing] asset: %v", err)
		} else {
			a.Icon = cloneNRGBA(icon)
		}
	}

	if cc.Sound != "" {
		a.SoundName = cc.Sound
		a.SoundData, err = os.ReadFile(filepath.Join(dir, cc.Sound))
		if err != nil {
			log.Printf("[boing] asset: read sound: %v", err)
			a.SoundData = nil
		}
	}
	return a
}

// LoadSprite decodes the image at path, clears pixels matching key, and
// thresholds the alpha.
func LoadSprite(path string, key color.NRGBA) (*image.NRGBA, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}
	sprite := Threshold(img, DefaultAlphaCutoff)
	applyColorKey(sprite, key)
	return sprite, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode image %s: empty image", path)
	}
	return img, nil
}

// applyColorKey makes every opaque pixel of exactly color key transparent.
func applyColorKey(img *image.NRGBA, key color.NRGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4 : i+4]
		if p[3] != 0 && p[0] == key.R && p[1] == key.G && p[2] == key.B {
			p[3] = 0
		}
	}
}
