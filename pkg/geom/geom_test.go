package geom

import "testing"

func TestResolve_FullReference(t *testing.T) {
	ref := Rect{Left: 100, Top: 200, Width: 1000, Height: 500}

	got := Resolve(RelRect{X: 0, Y: 0, W: 100, H: 100}, ref)
	want := Rect{Left: 100, Top: 200, Width: 1000, Height: 500}
	if got != want {
		t.Errorf("Resolve full = %+v, want %+v", got, want)
	}
}

func TestResolve_Truncates(t *testing.T) {
	ref := Rect{Width: 999, Height: 999}

	// 999 * 33.333 / 100 = 332.99667 → 332, never rounded up.
	got := Resolve(RelRect{X: 33.333, Y: 0, W: 33.333, H: 0}, ref)
	if got.Left != 332 {
		t.Errorf("Left = %d, want 332", got.Left)
	}
	if got.Width != 332 {
		t.Errorf("Width = %d, want 332", got.Width)
	}
}

func TestResolve_NoClamping(t *testing.T) {
	ref := Rect{Width: 100, Height: 100}

	got := Resolve(RelRect{X: -50, Y: 150, W: 200, H: 10}, ref)
	if got.Left != -50 {
		t.Errorf("Left = %d, want -50 (negative percentages pass through)", got.Left)
	}
	if got.Top != 150 {
		t.Errorf("Top = %d, want 150 (>100%% passes through)", got.Top)
	}
	if got.Width != 200 {
		t.Errorf("Width = %d, want 200", got.Width)
	}
}

func TestResolve_Proportional(t *testing.T) {
	ref := Rect{Left: 50, Top: 50, Width: 800, Height: 600}

	// For any percentage in [0,100] the offset stays within the reference span.
	for _, pct := range []float64{0, 1, 12.5, 50, 99.99, 100} {
		r := Resolve(RelRect{X: pct, Y: pct, W: pct, H: pct}, ref)
		if off := r.Left - ref.Left; off < 0 || off > ref.Width {
			t.Errorf("pct=%v: x offset %d outside [0,%d]", pct, off, ref.Width)
		}
		if off := r.Top - ref.Top; off < 0 || off > ref.Height {
			t.Errorf("pct=%v: y offset %d outside [0,%d]", pct, off, ref.Height)
		}
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 30, Height: 40}

	if got, want := r.Right(), int64(40); got != want {
		t.Errorf("Right = %d, want %d", got, want)
	}
	if got, want := r.Bottom(), int64(60); got != want {
		t.Errorf("Bottom = %d, want %d", got, want)
	}
	if got, want := r.Center(), (Point{X: 25, Y: 40}); got != want {
		t.Errorf("Center = %+v, want %+v", got, want)
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(Point{X: 0, Y: 10}, Point{X: 100, Y: 30})
	if want := (Point{X: 50, Y: 20}); got != want {
		t.Errorf("Midpoint = %+v, want %+v", got, want)
	}
}
