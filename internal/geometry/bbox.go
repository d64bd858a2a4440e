package geometry

import (
	"fmt"
	"math"
)

// BoundingBox represents a 3D axis aligned bounding box
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Width returns the width (X dimension) of the bounding box
func (b *BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the height (Y dimension) of the bounding box
func (b *BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Depth returns the depth (Z dimension) of the bounding box
func (b *BoundingBox) Depth() float64 {
	return b.MaxZ - b.MinZ
}

// Center returns the midpoint of the box
func (b *BoundingBox) Center() [3]float64 {
	return [3]float64{
		(b.MinX + b.MaxX) / 2,
		(b.MinY + b.MaxY) / 2,
		(b.MinZ + b.MaxZ) / 2,
	}
}

// Extend grows the box to contain p
func (b *BoundingBox) Extend(p [3]float32) {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MinZ = math.Min(b.MinZ, z)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
	b.MaxZ = math.Max(b.MaxZ, z)
}

// Union grows the box to contain other
func (b *BoundingBox) Union(other *BoundingBox) {
	b.MinX = math.Min(b.MinX, other.MinX)
	b.MinY = math.Min(b.MinY, other.MinY)
	b.MinZ = math.Min(b.MinZ, other.MinZ)
	b.MaxX = math.Max(b.MaxX, other.MaxX)
	b.MaxY = math.Max(b.MaxY, other.MaxY)
	b.MaxZ = math.Max(b.MaxZ, other.MaxZ)
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("%.3f x %.3f x %.3f", b.Width(), b.Height(), b.Depth())
}

// CalculateBoundingBox calculates the bounding box of a vertex list
func CalculateBoundingBox(positions [][3]float32) (*BoundingBox, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}

	first := positions[0]
	bbox := &BoundingBox{
		MinX: float64(first[0]),
		MinY: float64(first[1]),
		MinZ: float64(first[2]),
		MaxX: float64(first[0]),
		MaxY: float64(first[1]),
		MaxZ: float64(first[2]),
	}

	for _, p := range positions[1:] {
		bbox.Extend(p)
	}

	return bbox, nil
}
