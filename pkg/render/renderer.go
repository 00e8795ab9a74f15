// Package render draws a positioned layout onto a raster canvas and assigns
// type colors used both for glyphs and for the external legend.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ritzau/graph-explorer/pkg/layout"
	"github.com/ritzau/graph-explorer/pkg/model"
)

// Property keys probed for edge line width, in priority order. The first
// key present with a numeric value wins.
var strengthKeys = []string{"strength", "weight", "value", "count"}

// Property keys probed for a node caption.
var captionKeys = []string{"name", "title", "label"}

// Options configures rendering. Zero values fall back to DefaultOptions.
type Options struct {
	Background color.RGBA
	NodeRadius float64 // base radius before sizing properties apply
	EdgeWidth  float64 // base line width multiplied by the strength property
	FontSize   float64
	ShowLabels bool
}

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{
		Background: color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
		NodeRadius: 12,
		EdgeWidth:  1,
		FontSize:   12,
		ShowLabels: true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Background == (color.RGBA{}) {
		o.Background = d.Background
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = d.NodeRadius
	}
	if o.EdgeWidth == 0 {
		o.EdgeWidth = d.EdgeWidth
	}
	if o.FontSize == 0 {
		o.FontSize = d.FontSize
	}
	return o
}

// Renderer draws layouts onto an owned gg context. Color maps are rebuilt
// per render pass from the graph's frequency tables.
type Renderer struct {
	opts      Options
	dc        *gg.Context
	nodeColor ColorMap
	relColor  ColorMap
	degrees   map[string]int // node identity -> degree, optional sizing fallback
}

// NewRenderer creates a renderer with an empty canvas of the given pixel
// dimensions.
func NewRenderer(width, height int, opts Options) (*Renderer, error) {
	dc := gg.NewContext(width, height)

	ttf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}
	opts = opts.withDefaults()
	face, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("building label font face: %w", err)
	}
	dc.SetFontFace(face)

	return &Renderer{opts: opts, dc: dc}, nil
}

// SetDegrees supplies per-node degree counts used to size nodes that carry
// no explicit sizing property.
func (r *Renderer) SetDegrees(degrees map[string]int) {
	r.degrees = degrees
}

// AssignColors rebuilds the color maps from the graph's frequency tables.
// Must be called before Render.
func (r *Renderer) AssignColors(g *model.Graph) {
	r.nodeColor, r.relColor = AssignColors(g.NodeTypes, g.RelationshipTypes)
}

// NodeColors exposes the node type color map for an external legend.
func (r *Renderer) NodeColors() ColorMap { return r.nodeColor }

// RelationshipColors exposes the relationship type color map for an
// external legend.
func (r *Renderer) RelationshipColors() ColorMap { return r.relColor }

// Render clears the canvas and draws every link and node of the layout.
// Positions are read, never mutated.
func (r *Renderer) Render(l *layout.Layout) {
	dc := r.dc
	dc.SetColor(r.opts.Background)
	dc.Clear()

	// Links first so node glyphs sit on top of the line ends.
	for i := range l.Links {
		r.drawLink(l, &l.Links[i])
	}
	for i := range l.Nodes {
		r.drawNode(&l.Nodes[i])
	}
}

// Image returns the rendered raster surface.
func (r *Renderer) Image() image.Image { return r.dc.Image() }

// SavePNG writes the rendered surface to path.
func (r *Renderer) SavePNG(path string) error { return r.dc.SavePNG(path) }

func (r *Renderer) drawLink(l *layout.Layout, link *layout.SimLink) {
	dc := r.dc
	src := l.Nodes[link.Source].Pos
	dst := l.Nodes[link.Target].Pos

	c, ok := r.relColor[link.Rel.Type]
	if !ok {
		c = relationshipPalette[0]
	}

	width := r.opts.EdgeWidth
	if strength, ok := model.NumericProperty(link.Rel.Properties, strengthKeys...); ok && strength > 0 {
		width *= strength
	}

	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.MoveTo(src.X, src.Y)
	dc.LineTo(dst.X, dst.Y)
	dc.Stroke()

	targetRadius := r.nodeRadius(l.Nodes[link.Target].Node)
	r.drawArrowHead(src.X, src.Y, dst.X, dst.Y, c, targetRadius)
}

// drawArrowHead draws a filled triangle pointing at (x2, y2), pulled back
// along the link direction so it does not overlap the target node glyph.
func (r *Renderer) drawArrowHead(x1, y1, x2, y2 float64, c color.RGBA, nodeRadius float64) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	dx /= dist
	dy /= dist

	// Tip sits at the node boundary, not its center.
	ax := x2 - dx*(nodeRadius+2)
	ay := y2 - dy*(nodeRadius+2)

	const arrowLen = 10.0
	const arrowWidth = 5.0

	// Perpendicular for the two base corners.
	px := -dy
	py := dx

	dc := r.dc
	dc.SetColor(c)
	dc.MoveTo(ax, ay)
	dc.LineTo(ax-dx*arrowLen+px*arrowWidth, ay-dy*arrowLen+py*arrowWidth)
	dc.LineTo(ax-dx*arrowLen-px*arrowWidth, ay-dy*arrowLen-py*arrowWidth)
	dc.ClosePath()
	dc.Fill()
}

func (r *Renderer) drawNode(n *layout.SimNode) {
	dc := r.dc
	x, y := n.Pos.X, n.Pos.Y
	radius := r.nodeRadius(n.Node)

	c, ok := r.nodeColor[n.Node.PrimaryLabel()]
	if !ok {
		c = nodePalette[0]
	}

	// Soft drop shadow.
	dc.SetColor(color.RGBA{0, 0, 0, 0x40})
	dc.DrawCircle(x+3, y+3, radius)
	dc.Fill()

	dc.SetColor(c)
	dc.DrawCircle(x, y, radius)
	dc.Fill()

	// Contrasting outline.
	dc.SetColor(color.RGBA{0xff, 0xff, 0xff, 0xff})
	dc.SetLineWidth(2)
	dc.DrawCircle(x, y, radius)
	dc.Stroke()

	if r.opts.ShowLabels {
		caption, ok := model.StringProperty(n.Node.Properties, captionKeys...)
		if !ok {
			caption = n.Node.Identity
		}
		dc.SetColor(color.RGBA{0xf8, 0xf8, 0xf2, 0xff})
		dc.DrawStringAnchored(caption, x, y+radius+4, 0.5, 1)
	}
}

// nodeRadius sizes a node from its importance property when present,
// otherwise from a categorical size property, otherwise from its degree.
func (r *Renderer) nodeRadius(n *model.Node) float64 {
	base := r.opts.NodeRadius

	if importance, ok := model.NumericProperty(n.Properties, "importance"); ok {
		return math.Min(base+importance*2, base*3)
	}

	if size, ok := model.StringProperty(n.Properties, "size"); ok {
		switch size {
		case "large", "high":
			return base + 6
		case "medium":
			return base + 2
		case "small", "low":
			return math.Max(base-4, 4)
		}
	}

	if deg, ok := r.degrees[n.Identity]; ok && deg > 1 {
		return base + math.Min(float64(deg-1)*1.5, 8)
	}

	return base
}
