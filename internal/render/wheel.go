package render

import (
	"image"
	"math"

	"github.com/iburimskiy/roulette/internal/config"
)

// Scene is everything the wheel canvas shows in one frame.
type Scene struct {
	// Angle is the accumulated wheel rotation in degrees.
	Angle   float64
	Entries []string

	Center        image.Image
	CenterOpacity float64

	// Overlay is drawn over the whole canvas when OverlayOpacity > 0. A nil
	// Overlay falls back to Center.
	Overlay        image.Image
	OverlayOpacity float64

	// PointerGlow in [0,1] haloes the pointer, driven by the audio level.
	PointerGlow float64
}

// Renderer draws scenes on a CanvasSize×CanvasSize surface.
type Renderer struct {
	frame image.Image
	sepia map[image.Image]image.Image
}

// NewRenderer prepares the outer frame. A nil frame draws a plain white ring.
func NewRenderer(frame image.Image) *Renderer {
	r := &Renderer{sepia: map[image.Image]image.Image{}}
	if frame != nil {
		r.frame = CircleMask(frame, 2*(config.WheelRadius+config.OuterFrameThickness))
	}
	return r
}

var center = Point{config.CanvasCenterX, config.CanvasCenterY}

// Draw paints sc back to front: frame, rotated wheel, pointer, overlay.
func (r *Renderer) Draw(s Surface, sc Scene) {
	r.drawFrame(s)
	r.drawWheel(s, sc)
	drawPointer(s, sc.PointerGlow)
	r.drawOverlay(s, sc)
}

func (r *Renderer) drawFrame(s Surface) {
	outer := float64(config.WheelRadius + config.OuterFrameThickness)
	if r.frame == nil {
		s.FillCircle(center, outer, White)
		return
	}
	s.DrawImage(r.frame, Placement{Center: center, W: 2 * outer, H: 2 * outer, Alpha: 1})
}

func (r *Renderer) drawWheel(s Surface, sc Scene) {
	n := len(sc.Entries)
	rot := sc.Angle * math.Pi / 180
	if n > 0 {
		arc := 2 * math.Pi / float64(n)
		for i, label := range sc.Entries {
			start := rot + float64(i)*arc
			sector := Sector(center, config.WheelRadius, start, start+arc)
			s.FillPolygon(sector, SegmentColor(i, n))
			if n > 1 {
				s.StrokePolygon(sector, 1, Black)
			}
			s.DrawText(Text{
				S:        label,
				At:       center,
				Rotation: start + arc/2,
				Offset:   config.WheelRadius - config.LabelInset,
				Size:     config.LabelFontSize,
				AlignX:   1,
				Color:    Black,
			})
		}
	}

	s.FillCircle(center, config.CenterDiscRadius, White)
	if sc.Center != nil && sc.CenterOpacity > 0 {
		s.DrawImage(sc.Center, Placement{
			Center:   center,
			W:        config.CenterImageSize,
			H:        config.CenterImageSize,
			Rotation: rot,
			Alpha:    clamp01(sc.CenterOpacity),
		})
	}
}

// PointerTriangle is the fixed pointer: base at the top, apex towards the hub.
func PointerTriangle() []Point {
	cx := float64(config.CanvasCenterX)
	top := float64(config.PointerBaseTopY)
	return []Point{
		{cx - config.PointerHalfWidth, top},
		{cx + config.PointerHalfWidth, top},
		{cx, top + config.PointerHeight},
	}
}

func drawPointer(s Surface, glow float64) {
	tri := PointerTriangle()
	if glow > 0 {
		halo := scalePolygon(tri, 1+0.6*clamp01(glow))
		s.FillPolygon(halo, WithAlpha(PointerRed, 0.5*clamp01(glow)))
	}
	s.FillPolygon(tri, PointerRed)
}

func (r *Renderer) drawOverlay(s Surface, sc Scene) {
	if sc.OverlayOpacity <= 0 {
		return
	}
	src := sc.Overlay
	if src == nil {
		src = sc.Center
	}
	if src == nil {
		return
	}
	tinted, ok := r.sepia[src]
	if !ok {
		tinted = Sepia(src)
		r.sepia[src] = tinted
	}
	s.DrawImage(tinted, Placement{
		Center: center,
		W:      config.CanvasSize,
		H:      config.CanvasSize,
		Alpha:  clamp01(sc.OverlayOpacity),
	})
}

// Sector approximates the pie slice between two angles (radians) with a polygon
// whose first vertex is the centre.
func Sector(c Point, radius, start, end float64) []Point {
	steps := int(math.Ceil(math.Abs(end-start) / (math.Pi / 90)))
	if steps < 2 {
		steps = 2
	}
	pts := make([]Point, 0, steps+2)
	pts = append(pts, c)
	for i := 0; i <= steps; i++ {
		a := start + (end-start)*float64(i)/float64(steps)
		pts = append(pts, Point{c.X + radius*math.Cos(a), c.Y + radius*math.Sin(a)})
	}
	return pts
}

func scalePolygon(pts []Point, k float64) []Point {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{cx + (p.X-cx)*k, cy + (p.Y-cy)*k}
	}
	return out
}
