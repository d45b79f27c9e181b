package dance

// An Animation produces the frame to draw at a point in time.
type Animation interface {
	CalculateFrame(runtimeMs int64) *Frame
}
