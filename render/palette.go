package render

import "github.com/gdamore/tcell/v2"

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbGround     = tcell.NewRGBColor(120, 100, 70)  // Earth
	RgbLauncher   = tcell.NewRGBColor(0, 255, 0)     // Launch marker
	RgbProjectile = tcell.NewRGBColor(255, 255, 255) // Shot body
	RgbImpact     = tcell.NewRGBColor(255, 80, 80)   // Shot at rest below ground
	RgbStatusBar  = tcell.NewRGBColor(200, 200, 200)
	RgbPanelText  = tcell.NewRGBColor(180, 180, 180)
	RgbPanelFocus = tcell.NewRGBColor(255, 165, 0) // Orange, focused field
	RgbError      = tcell.NewRGBColor(255, 120, 120)

	// Trail fades from hot to cold with age
	rgbTrailNew = [3]int32{255, 200, 80}
	rgbTrailOld = [3]int32{60, 40, 20}
)

// lerpColor blends two RGB triplets, t in [0,1]
func lerpColor(a, b [3]int32, t float64) tcell.Color {
	t = min(max(t, 0), 1)
	mix := func(x, y int32) int32 { return x + int32(float64(y-x)*t) }
	return tcell.NewRGBColor(mix(a[0], b[0]), mix(a[1], b[1]), mix(a[2], b[2]))
}
