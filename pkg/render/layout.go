package render

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Placement is one word positioned on the canvas. X and Y are the centre of
// its bounding box.
type Placement struct {
	Word   string
	Weight int
	Size   float64
	X, Y   float64
	Bounds image.Rectangle
	Color  color.Color
}

// palette follows the viridis ramp.
var palette = []color.Color{
	color.RGBA{68, 1, 84, 255},
	color.RGBA{72, 40, 120, 255},
	color.RGBA{62, 74, 137, 255},
	color.RGBA{49, 104, 142, 255},
	color.RGBA{38, 130, 142, 255},
	color.RGBA{31, 158, 137, 255},
	color.RGBA{53, 183, 121, 255},
	color.RGBA{109, 205, 89, 255},
	color.RGBA{180, 222, 44, 255},
}

const (
	padding    = 2
	spiralStep = 0.1
	shrink     = 0.85
)

// faceCache builds one face per font size.
type faceCache struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

func newFaceCache(f *truetype.Font) *faceCache {
	return &faceCache{font: f, faces: make(map[float64]font.Face)}
}

func (c *faceCache) face(size float64) font.Face {
	size = math.Round(size*2) / 2
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(c.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	c.faces[size] = face
	return face
}

// measure returns the pixel box of s drawn in face.
func measure(face font.Face, s string) (w, h int) {
	adv := font.MeasureString(face, s)
	m := face.Metrics()
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil()
}

// layout places words largest first along an archimedean spiral starting
// at the canvas centre. A word that does not fit is retried at a smaller
// size and dropped once it would go below minSize.
func layout(weights map[string]int, faces *faceCache, width, height int, maxSize, minSize float64, rng *rand.Rand) []Placement {
	words := make([]string, 0, len(weights))
	maxWeight := 0
	for w, weight := range weights {
		words = append(words, w)
		maxWeight = max(maxWeight, weight)
	}
	if maxWeight <= 0 {
		return nil
	}
	sort.Slice(words, func(i, j int) bool {
		if weights[words[i]] != weights[words[j]] {
			return weights[words[i]] > weights[words[j]]
		}
		return words[i] < words[j]
	})

	intn := rand.IntN
	float := rand.Float64
	if rng != nil {
		intn = rng.IntN
		float = rng.Float64
	}

	canvas := image.Rect(0, 0, width, height)
	aspect := float64(width) / float64(height)
	maxRadius := math.Hypot(float64(width), float64(height)) / 2

	var placed []Placement
	for _, word := range words {
		size := max(minSize, maxSize*float64(weights[word])/float64(maxWeight))
		for size >= minSize {
			bw, bh := measure(faces.face(size), word)
			if p, ok := findSlot(canvas, placed, bw+2*padding, bh+2*padding, aspect, maxRadius, float()*2*math.Pi); ok {
				placed = append(placed, Placement{
					Word:   word,
					Weight: weights[word],
					Size:   size,
					X:      float64(p.Min.X+p.Max.X) / 2,
					Y:      float64(p.Min.Y+p.Max.Y) / 2,
					Bounds: p,
					Color:  palette[intn(len(palette))],
				})
				break
			}
			size *= shrink
		}
	}
	return placed
}

func findSlot(canvas image.Rectangle, placed []Placement, w, h int, aspect, maxRadius, phase float64) (image.Rectangle, bool) {
	cx, cy := float64(canvas.Dx())/2, float64(canvas.Dy())/2
	for t := 0.0; ; t += spiralStep {
		r := t
		if r > maxRadius {
			return image.Rectangle{}, false
		}
		x := cx + r*math.Cos(t+phase)*aspect
		y := cy + r*math.Sin(t+phase)
		rect := image.Rect(int(x)-w/2, int(y)-h/2, int(x)-w/2+w, int(y)-h/2+h)
		if !rect.In(canvas) {
			continue
		}
		if collides(rect, placed) {
			continue
		}
		return rect, true
	}
}

func collides(rect image.Rectangle, placed []Placement) bool {
	for _, p := range placed {
		if rect.Overlaps(p.Bounds) {
			return true
		}
	}
	return false
}
