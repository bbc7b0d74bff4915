package config

const (
	WindowWidth  = 860
	WindowHeight = 560

	// Wheel canvas, placed at the left edge of the window.
	CanvasSize    = 512
	CanvasCenterX = CanvasSize / 2
	CanvasCenterY = CanvasSize / 2
	CanvasX       = 16
	CanvasY       = 24

	WheelRadius          = 240
	OuterFrameThickness  = 15
	CenterDiscRadius     = 40
	CenterImageSize      = 80
	LabelInset           = 20
	LabelFontSize        = 16
	PointerBaseTopY      = 16
	PointerHeight        = 30
	PointerHalfWidth     = 10
	SegmentSaturation    = 0.80
	SegmentLightness     = 0.70
	BannerFontSize       = 36
	SubBannerFontSize    = 28
	VersusImageWidth     = 150
	ShakeAmplitude       = 6.0
	ShakeFrequency       = 40.0
	PopupDurationSeconds = 0.5

	// Button dimensions
	ButtonWidth   = 120
	ButtonHeight  = 40
	SpinButtonX   = CanvasX + CanvasSize + 24
	SpinButtonY   = WindowHeight - ButtonHeight - 24
	ImportButtonX = SpinButtonX + ButtonWidth + 16
	ImportButtonY = SpinButtonY

	// Entry editor
	EditorX          = CanvasX + CanvasSize + 24
	EditorY          = CanvasY
	EditorWidth      = WindowWidth - EditorX - 16
	EditorHeight     = SpinButtonY - EditorY - 16
	EditorLineHeight = 18

	// EntriesKey is the storage key for the raw entries text.
	EntriesKey = "roulette_entries"
)
