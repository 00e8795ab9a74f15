package layout

import (
	"math"

	"github.com/ritzau/graph-explorer/pkg/logging"
)

// ScaleToFit remaps all node positions into a padded viewport, preserving
// aspect ratio by scaling both axes with the smaller of the two axis scale
// factors. A layout with no nodes or a collapsed bounding box is left
// unchanged with a warning; there is nothing meaningful to fit and scaling
// would divide by zero.
func (l *Layout) ScaleToFit(width, height, padding float64) {
	if len(l.Nodes) == 0 {
		logging.Warn("scale to fit skipped: layout has no nodes")
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range l.Nodes {
		p := l.Nodes[i].Pos
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	if maxX-minX == 0 || maxY-minY == 0 {
		logging.Warn("scale to fit skipped: degenerate bounding box",
			"width", maxX-minX, "height", maxY-minY)
		return
	}

	scaleX := (width - 2*padding) / (maxX - minX)
	scaleY := (height - 2*padding) / (maxY - minY)
	scale := math.Min(scaleX, scaleY)

	for i := range l.Nodes {
		l.Nodes[i].Pos.X = padding + (l.Nodes[i].Pos.X-minX)*scale
		l.Nodes[i].Pos.Y = padding + (l.Nodes[i].Pos.Y-minY)*scale
	}

	l.Width = width
	l.Height = height
}
