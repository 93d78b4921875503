package model

// BoundingBox is the header block's optional bounding box, carried through
// to the HeaderBBox fields at nanodegree resolution by the encoder facade.
type BoundingBox struct {
	Top    Degrees
	Left   Degrees
	Bottom Degrees
	Right  Degrees
}
