package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII is baked; other runes advance like a space.
const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasWidth   = 256
	glyphPadding = 1
)

// Glyph describes a single character's placement and metrics within the atlas
type Glyph struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	X, Y float32
	W, H float32
	// Offset from the pen position to the glyph's top-left corner
	BearingX float32
	BearingY float32
	Advance  int
}

// GlyphAtlas is a single-channel glyph sheet plus per-glyph metrics.
type GlyphAtlas struct {
	W, H      int
	LineH     int
	Glyphs    map[rune]Glyph
	Pix       *image.Alpha
	TextureID uint32
}

// LoadFace parses an OpenType or TrueType file at the given pixel size. An
// empty path returns the built-in 7x13 bitmap face.
func LoadFace(path string, pixels float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: pixels, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// BakeGlyphs rasterizes printable ASCII from face into a row-packed atlas.
// Nothing is uploaded.
func BakeGlyphs(face font.Face) *GlyphAtlas {
	// First pass: row height and atlas height.
	rowH := 0
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		dr, _, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if ok {
			rowH = max(rowH, dr.Dy())
		}
	}
	rowH = max(rowH, 1)
	offsetX, rows := 0, 1
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		dr, _, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		if offsetX+dr.Dx() > atlasWidth {
			rows++
			offsetX = 0
		}
		offsetX += dr.Dx() + glyphPadding
	}

	a := &GlyphAtlas{
		W:      atlasWidth,
		H:      rows * (rowH + glyphPadding),
		LineH:  face.Metrics().Height.Ceil(),
		Glyphs: make(map[rune]Glyph, lastGlyph-firstGlyph+1),
	}
	a.Pix = image.NewAlpha(image.Rect(0, 0, a.W, a.H))

	// Second pass: draw and record metrics.
	offsetX, offsetY := 0, 0
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  int(math.Round(float64(advance) / 64.0)),
		}
		gw, gh := dr.Dx(), dr.Dy()
		if gw > 0 && gh > 0 && mask != nil {
			if offsetX+gw > a.W {
				offsetX = 0
				offsetY += rowH + glyphPadding
			}
			draw.Draw(a.Pix, image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh), mask, maskp, draw.Src)
			g.X, g.Y = float32(offsetX), float32(offsetY)
			g.W, g.H = float32(gw), float32(gh)
			offsetX += gw + glyphPadding
		}
		a.Glyphs[r] = g
	}
	return a
}

// Measure returns the width and tallest glyph height of text at scale.
func (a *GlyphAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		g := a.glyph(r)
		width += float32(g.Advance) * scale
		height = max(height, g.H*scale)
	}
	return width, height
}

func (a *GlyphAtlas) glyph(r rune) Glyph {
	if g, ok := a.Glyphs[r]; ok {
		return g
	}
	return Glyph{Advance: a.Glyphs[' '].Advance}
}

// AppendText appends two triangles per visible glyph of text, with the
// baseline starting at (x, y) in pixels. Each vertex is x, y, u, v.
func (a *GlyphAtlas) AppendText(dst []float32, text string, x, y, scale float32) []float32 {
	aw, ah := float32(a.W), float32(a.H)
	for _, r := range text {
		g := a.glyph(r)
		if g.W > 0 && g.H > 0 {
			x0 := x + g.BearingX*scale
			y0 := y - g.BearingY*scale
			x1 := x0 + g.W*scale
			y1 := y0 + g.H*scale
			u0, v0 := g.X/aw, g.Y/ah
			u1, v1 := (g.X+g.W)/aw, (g.Y+g.H)/ah
			dst = append(dst,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += float32(g.Advance) * scale
	}
	return dst
}

// Upload copies the atlas into a GL_RED texture.
func (a *GlyphAtlas) Upload() {
	gl.GenTextures(1, &a.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(a.W), int32(a.H), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Pix.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// TextRenderer draws screen-space text from a baked atlas
type TextRenderer struct {
	atlas      *GlyphAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
	verts      []float32
}

// NewTextRenderer bakes face, uploads the atlas and compiles the text shader.
func NewTextRenderer(face font.Face) (*TextRenderer, error) {
	atlas := BakeGlyphs(face)
	if len(atlas.Glyphs) == 0 {
		return nil, fmt.Errorf("font face has no printable glyphs")
	}
	shader, err := LoadShader("text")
	if err != nil {
		return nil, err
	}
	atlas.Upload()

	tr := &TextRenderer{
		atlas:      atlas,
		shader:     shader,
		projection: mgl32.Ortho(0, 1, 1, 0, -1, 1),
	}
	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return tr, nil
}

// Atlas returns the baked glyphs.
func (tr *TextRenderer) Atlas() *GlyphAtlas { return tr.atlas }

// SetViewport maps pixel coordinates, top-left origin, to the framebuffer.
func (tr *TextRenderer) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		tr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
	}
}

// RenderLines draws lines top to bottom starting with the first baseline at
// (x, y). Lines are lineStep pixels apart.
func (tr *TextRenderer) RenderLines(lines []string, x, y, lineStep, scale float32, color mgl32.Vec3) {
	tr.verts = tr.verts[:0]
	for i, line := range lines {
		tr.verts = tr.atlas.AppendText(tr.verts, line, x, y+float32(i)*lineStep, scale)
	}
	if len(tr.verts) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	tr.shader.Use()
	tr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	tr.shader.SetMatrix4("projection", &tr.projection[0])
	tr.shader.SetInt("glyphs", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.atlas.TextureID)

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	// Orphan, then fill.
	size := len(tr.verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(tr.verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(tr.verts)/4))
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

// Delete releases the texture, buffers and program.
func (tr *TextRenderer) Delete() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
	}
	if tr.atlas.TextureID != 0 {
		gl.DeleteTextures(1, &tr.atlas.TextureID)
	}
	tr.shader.Delete()
}
