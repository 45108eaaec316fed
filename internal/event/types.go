// internal/event/types.go
package event

const (
	PointerMoved    EventType = "PointerMoved"    // Указатель сдвинулся
	ViewportResized EventType = "ViewportResized" // Изменился размер окна
)

// PointerMove — данные события PointerMoved (логические пиксели).
type PointerMove struct {
	X, Y   float64
	DX, DY float64
}

// Resize — данные события ViewportResized.
type Resize struct {
	Width, Height int
	PixelRatio    float64
}
