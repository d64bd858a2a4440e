package geometry

import (
	"math"
	"sort"
)

// Rectangle represents a 2D rectangle for packing
type Rectangle struct {
	Width, Height float64
	ID            int
}

// PackingResult represents the placement of one rectangle
type PackingResult struct {
	X, Y   float64
	ID     int
	Width  float64
	Height float64
}

// Packer implements shelf packing of rectangles
type Packer struct {
	margin float64
}

// NewPacker creates a new packer with the specified margin between rectangles
func NewPacker(margin float64) *Packer {
	return &Packer{margin: margin}
}

// Pack arranges rectangles on shelves no wider than maxRowWidth. Rectangles
// wider than maxRowWidth get a shelf of their own. Results are returned in
// placement order, tallest first; use ID to map them back.
func (p *Packer) Pack(objects []Rectangle, maxRowWidth float64) []PackingResult {
	if len(objects) == 0 {
		return []PackingResult{}
	}

	sorted := make([]Rectangle, len(objects))
	copy(sorted, objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Height != sorted[j].Height {
			return sorted[i].Height > sorted[j].Height
		}
		return sorted[i].Width > sorted[j].Width
	})

	results := make([]PackingResult, len(sorted))

	currentX := 0.0
	currentY := 0.0
	shelfHeight := 0.0

	for i, obj := range sorted {
		if currentX > 0 && currentX+obj.Width > maxRowWidth {
			currentX = 0.0
			currentY += shelfHeight + p.margin
			shelfHeight = 0.0
		}

		results[i] = PackingResult{
			X:      currentX,
			Y:      currentY,
			ID:     obj.ID,
			Width:  obj.Width,
			Height: obj.Height,
		}

		currentX += obj.Width + p.margin
		if obj.Height > shelfHeight {
			shelfHeight = obj.Height
		}
	}

	return results
}

// SquareRowWidth estimates a shelf width that gives a roughly square layout
func (p *Packer) SquareRowWidth(objects []Rectangle) float64 {
	totalArea := 0.0
	widest := 0.0
	for _, obj := range objects {
		totalArea += (obj.Width + p.margin) * (obj.Height + p.margin)
		widest = math.Max(widest, obj.Width)
	}
	return math.Max(math.Sqrt(totalArea*1.2), widest)
}

// Extent returns the width and height covered by the packed rectangles
func Extent(results []PackingResult) (width, height float64) {
	for _, r := range results {
		width = math.Max(width, r.X+r.Width)
		height = math.Max(height, r.Y+r.Height)
	}
	return width, height
}
