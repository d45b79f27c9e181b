package view

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cubedance/dance"
	"github.com/matt-g-everett/cubedance/util"
	"golang.org/x/image/math/f64"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 0.5

const (
	fogDistance = 30.0
	floorStep   = 2.0
)

var (
	worldUp = f64.Vec3{0, 1, 0}
	glyphs  = []rune("░▒▓█")
)

type cell struct {
	glyph  rune
	colour colorful.Color
	set    bool
}

// Renderer draws frames as coloured characters.
type Renderer struct {
	fog    []float64
	facing []float64
	styles map[string]lipgloss.Style
}

// NewRenderer creates a Renderer with its shading tables.
func NewRenderer() *Renderer {
	r := new(Renderer)
	r.fog = util.GenerateRamp(64, ease.InQuad)
	r.facing = util.GenerateLut(32, ease.InOutQuad)
	r.styles = make(map[string]lipgloss.Style)
	return r
}

// Projection maps world points onto a character grid for one camera.
type Projection struct {
	pos     f64.Vec3
	right   f64.Vec3
	up      f64.Vec3
	forward f64.Vec3
	focal   float64
	aspect  float64
	near    float64
	far     float64
	cols    float64
	rows    float64
}

// GridAspect is the width to height ratio of a cols x rows character grid.
func GridAspect(cols, rows int) float64 {
	return float64(cols) * cellAspect / float64(rows)
}

// NewProjection builds the view basis of cam for a cols x rows grid.
func NewProjection(cam dance.Camera, cols, rows int) *Projection {
	p := new(Projection)
	p.pos = cam.Position
	p.forward = util.Normalize(util.Sub(cam.Target, cam.Position))
	p.right = util.Normalize(util.Cross(p.forward, worldUp))
	p.up = util.Cross(p.right, p.forward)
	p.focal = 1 / math.Tan(cam.FOV*math.Pi/360)
	p.near = cam.Near
	p.far = cam.Far
	p.cols = float64(cols)
	p.rows = float64(rows)
	p.aspect = cam.Aspect
	if p.aspect <= 0 {
		p.aspect = GridAspect(cols, rows)
	}
	return p
}

// Project returns the grid position and view depth of a world point. ok is
// false when the point is outside the clip range.
func (p *Projection) Project(point f64.Vec3) (col, row, depth float64, ok bool) {
	d := util.Sub(point, p.pos)
	depth = util.Dot(d, p.forward)
	if depth < p.near || depth > p.far {
		return 0, 0, depth, false
	}
	x := util.Dot(d, p.right) * p.focal / (depth * p.aspect)
	y := util.Dot(d, p.up) * p.focal / depth
	col = (x + 1) / 2 * p.cols
	row = (1 - y) / 2 * p.rows
	return col, row, depth, true
}

// extent converts a world size at depth into half widths in cells.
func (p *Projection) extent(size, depth float64) (halfCols, halfRows float64) {
	ndc := size / 2 * p.focal / depth
	return ndc / p.aspect * p.cols / 2, ndc * p.rows / 2
}

func (r *Renderer) fogAt(depth float64) float64 {
	i := int(depth / fogDistance * float64(len(r.fog)-1))
	i = max(0, min(len(r.fog)-1, i))
	return r.fog[i]
}

// shade dims a cube as its faces turn away from square on.
func (r *Renderer) shade(rotation float64) rune {
	quarter := math.Mod(math.Abs(rotation), math.Pi/2) / (math.Pi / 2)
	i := int(quarter * float64(len(r.facing)-1))
	light := 1 - 0.75*r.facing[i]
	g := int(light * float64(len(glyphs)-1))
	return glyphs[max(0, min(len(glyphs)-1, g))]
}

// Render draws f into a cols x rows block of text.
func (r *Renderer) Render(f *dance.Frame, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}
	put := func(c, row int, glyph rune, colour colorful.Color) {
		if row < 0 || row >= rows || c < 0 || c >= cols {
			return
		}
		grid[row][c] = cell{glyph: glyph, colour: colour, set: true}
	}

	proj := NewProjection(f.Camera, cols, rows)

	half := f.FloorSize / 2
	for x := -half; x <= half; x += floorStep {
		for z := -half; z <= half; z += floorStep {
			col, row, depth, ok := proj.Project(f64.Vec3{x, 0, z})
			if !ok {
				continue
			}
			put(int(col), int(row), '·', f.Floor.BlendHcl(f.Background, r.fogAt(depth)).Clamped())
		}
	}

	type placed struct {
		col, row, depth float64
		obj             dance.ObjectState
	}
	visible := make([]placed, 0, len(f.Objects))
	for _, o := range f.Objects {
		col, row, depth, ok := proj.Project(o.Position)
		if ok {
			visible = append(visible, placed{col, row, depth, o})
		}
	}
	// Painter's order: far cubes first.
	sort.Slice(visible, func(i, j int) bool { return visible[i].depth > visible[j].depth })

	for _, v := range visible {
		hc, hr := proj.extent(v.obj.Scale, v.depth)
		glyph := r.shade(v.obj.RotationY)
		colour := v.obj.Colour.BlendHcl(f.Background, r.fogAt(v.depth)).Clamped()
		for row := int(math.Round(v.row - hr)); row <= int(math.Round(v.row+hr)); row++ {
			for col := int(math.Round(v.col - hc)); col <= int(math.Round(v.col+hc)); col++ {
				put(col, row, glyph, colour)
			}
		}
	}

	var b strings.Builder
	for i, line := range grid {
		for _, c := range line {
			if !c.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(r.style(c.colour).Render(string(c.glyph)))
		}
		if i < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *Renderer) style(c colorful.Color) lipgloss.Style {
	hex := c.Hex()
	s, ok := r.styles[hex]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		r.styles[hex] = s
	}
	return s
}
