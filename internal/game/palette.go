package game

import (
	"fmt"
	"image/color"
	"strings"
)

// Scene picks the terrain palette. It is cosmetic only.
type Scene int

const (
	SceneMountains Scene = iota
	SceneDesert
	SceneArctic
)

var sceneNames = [...]string{"mountains", "desert", "arctic"}

func (s Scene) String() string {
	if s < 0 || int(s) >= len(sceneNames) {
		return "unknown"
	}
	return sceneNames[s]
}

// ParseScene accepts a scene name, case-insensitively. Empty means mountains.
func ParseScene(name string) (Scene, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return SceneMountains, nil
	}
	for i, sn := range sceneNames {
		if sn == n {
			return Scene(i), nil
		}
	}
	return SceneMountains, fmt.Errorf("unknown scene %q", name)
}

// palette is one lighting variant of a scene.
type palette struct {
	skyTop, skyMid, skyBottom color.RGBA
	back, middle, front       color.RGBA
	outline                   color.RGBA
	ridge                     color.RGBA // highlight along rising slopes
	valley                    color.RGBA // shade along falling slopes
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// nrgba converts a straight-alpha colour into the premultiplied form ebiten
// expects from color.RGBA.
func nrgba(r, g, b, a uint8) color.RGBA {
	return color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: b, A: a}).(color.RGBA)
}

var (
	daySky   = [3]color.RGBA{rgb(0x87, 0xce, 0xeb), rgb(0xb0, 0xd8, 0xf0), rgb(0xe0, 0xf6, 0xff)}
	nightSky = [3]color.RGBA{rgb(0x0a, 0x0a, 0x1a), rgb(0x1a, 0x1a, 0x3e), rgb(0x2a, 0x2a, 0x4e)}

	// scenePalettes[scene][night]
	scenePalettes = [3][2]palette{
		SceneMountains: {
			{back: rgb(0x4a, 0x7c, 0x59), middle: rgb(0x5a, 0x9c, 0x6a), front: rgb(0x6a, 0xac, 0x7a), outline: rgb(0x4a, 0x7c, 0x59),
				ridge: nrgba(150, 220, 150, 153), valley: nrgba(0, 0, 0, 51)},
			{back: rgb(0x1a, 0x2e, 0x24), middle: rgb(0x2d, 0x4a, 0x3e), front: rgb(0x2d, 0x4a, 0x3e), outline: rgb(0x1a, 0x2e, 0x24),
				ridge: nrgba(100, 150, 100, 77), valley: nrgba(0, 0, 0, 102)},
		},
		SceneDesert: {
			{back: rgb(0xb8, 0x8a, 0x4e), middle: rgb(0xd0, 0xa4, 0x62), front: rgb(0xe4, 0xbe, 0x7a), outline: rgb(0xa0, 0x76, 0x40),
				ridge: nrgba(255, 230, 170, 153), valley: nrgba(0, 0, 0, 51)},
			{back: rgb(0x3a, 0x2c, 0x1c), middle: rgb(0x52, 0x40, 0x2a), front: rgb(0x5e, 0x4a, 0x32), outline: rgb(0x2e, 0x22, 0x14),
				ridge: nrgba(170, 140, 100, 77), valley: nrgba(0, 0, 0, 102)},
		},
		SceneArctic: {
			{back: rgb(0x9a, 0xb4, 0xc8), middle: rgb(0xc4, 0xd8, 0xe6), front: rgb(0xea, 0xf2, 0xf8), outline: rgb(0x8a, 0xa4, 0xb8),
				ridge: nrgba(255, 255, 255, 178), valley: nrgba(40, 60, 90, 51)},
			{back: rgb(0x26, 0x32, 0x44), middle: rgb(0x3a, 0x4a, 0x60), front: rgb(0x4a, 0x5c, 0x74), outline: rgb(0x1e, 0x28, 0x36),
				ridge: nrgba(180, 200, 230, 77), valley: nrgba(0, 0, 0, 102)},
		},
	}

	// Player colours, indexed by PlayerID-1.
	playerColors = [2]color.RGBA{rgb(0x00, 0xd4, 0xff), rgb(0xff, 0x44, 0x44)}

	trackColor     = rgb(0x33, 0x33, 0x33)
	trackDetail    = rgb(0x55, 0x55, 0x55)
	shellColor     = rgb(0xff, 0xaa, 0x00)
	shellTrail     = nrgba(255, 170, 0, 77)
	blastOuter     = nrgba(255, 100, 0, 255)
	blastInner     = nrgba(255, 200, 0, 255)
	blastCore      = nrgba(255, 255, 255, 255)
	sunColor       = nrgba(255, 220, 100, 204)
	moonColor      = nrgba(255, 255, 200, 230)
	cloudColor     = nrgba(255, 255, 255, 178)
	inactiveText   = rgb(0x88, 0x88, 0x88)
	dialColor      = nrgba(0xf0, 0x93, 0xfb, 255)
	powerBarColor  = nrgba(0xfe, 0xe1, 0x40, 255)
	panelBackColor = nrgba(10, 10, 20, 200)
)

// paletteFor returns the colours for a scene under the given lighting.
func paletteFor(s Scene, night bool) palette {
	if s < 0 || int(s) >= len(scenePalettes) {
		s = SceneMountains
	}
	p := scenePalettes[s][0]
	sky := daySky
	if night {
		p = scenePalettes[s][1]
		sky = nightSky
	}
	p.skyTop, p.skyMid, p.skyBottom = sky[0], sky[1], sky[2]
	return p
}

// scaleAlpha multiplies a colour's alpha (and premultiplied channels) by f.
func scaleAlpha(c color.RGBA, f float64) color.RGBA {
	if f <= 0 {
		return color.RGBA{}
	}
	if f >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}

// lerpColor blends a toward b by t in [0,1].
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
