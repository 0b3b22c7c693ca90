package bento

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	hoverFadeIn   = 0.12 // seconds to reach full highlight
	hoverFadeOut  = 0.30 // seconds to fade back out
	highlightGain = 0.35 // how far the fill lerps toward white at full hover
	regenFade     = 0.35 // seconds for the fade-in after regeneration
)

// Renderer draws a grid's cells as solid convex polygons via DrawTriangles.
// It also owns the purely cosmetic animation state: a tweened highlight per
// hovered cell and a fade-in after regeneration. Vertex and index buffers
// grow to a high-water mark and are reused every frame.
type Renderer struct {
	// Background is the clear color behind the cells.
	Background Color

	verts  []ebiten.Vertex
	inds   []uint16
	ptsBuf []Vec2

	curHover   int
	highlights map[int]*highlight

	fade      *gween.Tween
	fadeAlpha float64
}

type highlight struct {
	tween *gween.Tween
	value float64
}

// NewRenderer creates a renderer with the default dark background.
func NewRenderer() *Renderer {
	return &Renderer{
		Background: Color{R: 0.075, G: 0.075, B: 0.102, A: 1},
		curHover:   -1,
		highlights: make(map[int]*highlight),
		fadeAlpha:  1,
	}
}

// SetHover retargets the highlight tweens when the hovered cell changes.
// Pass -1 for no hover.
func (r *Renderer) SetHover(id int) {
	if id == r.curHover {
		return
	}
	if prev, ok := r.highlights[r.curHover]; ok {
		prev.tween = gween.New(float32(prev.value), 0, hoverFadeOut, ease.OutQuad)
	}
	if id >= 0 {
		h := r.highlights[id]
		if h == nil {
			h = &highlight{}
			r.highlights[id] = h
		}
		h.tween = gween.New(float32(h.value), 1, hoverFadeIn, ease.OutQuad)
	}
	r.curHover = id
}

// FadeIn restarts the regeneration fade from fully transparent.
func (r *Renderer) FadeIn() {
	r.fade = gween.New(0, 1, regenFade, ease.OutQuad)
	r.fadeAlpha = 0
}

// Update advances the highlight and fade tweens by dt seconds.
func (r *Renderer) Update(dt float32) {
	if r.fade != nil {
		v, done := r.fade.Update(dt)
		r.fadeAlpha = float64(v)
		if done {
			r.fade = nil
		}
	}

	for id, h := range r.highlights {
		if h.tween == nil {
			continue
		}
		v, done := h.tween.Update(dt)
		h.value = float64(v)
		if done {
			h.tween = nil
			if h.value == 0 && id != r.curHover {
				delete(r.highlights, id)
			}
		}
	}
}

// Draw fills the background and renders every non-degenerate cell polygon.
func (r *Renderer) Draw(dst *ebiten.Image, g *Grid, gap float64) {
	dst.Fill(r.Background.toRGBA())

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]

	for _, c := range g.Cells {
		r.ptsBuf = c.Vertices(gap, r.ptsBuf)
		if len(r.ptsBuf) < 3 {
			continue
		}

		col := CellColor(c.ID)
		if h, ok := r.highlights[c.ID]; ok && h.value > 0 {
			col = col.Lerp(ColorWhite, h.value*highlightGain)
		}
		r.appendFan(r.ptsBuf, col, r.fadeAlpha)
	}

	if len(r.inds) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.AntiAlias = true
	dst.DrawTriangles(r.verts, r.inds, ensureWhitePixel(), &triOp)
}

// appendFan triangulates a convex polygon as a fan and appends premultiplied
// vertices to the frame buffers.
func (r *Renderer) appendFan(pts []Vec2, col Color, alpha float64) {
	base := uint16(len(r.verts))
	a := float32(col.A * alpha)
	cr := float32(col.R) * a
	cg := float32(col.G) * a
	cb := float32(col.B) * a

	for _, p := range pts {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: a,
		})
	}
	for i := uint16(2); i < uint16(len(pts)); i++ {
		r.inds = append(r.inds, base, base+i-1, base+i)
	}
}

// toRGBA converts to a premultiplied 8-bit color for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// --- White pixel singleton (no sync.Once — bento is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the texture for all solid polygon fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
