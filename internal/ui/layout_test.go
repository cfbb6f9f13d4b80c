package ui

import (
	"image"
	"testing"

	"lbm2d/internal/core"
)

func TestBuildTitle(t *testing.T) {
	if got := buildTitle("lbm"); got != "Lbm controls" {
		t.Fatalf("buildTitle = %q", got)
	}
	if got := buildTitle(""); got != "Controls" {
		t.Fatalf("buildTitle(\"\") = %q", got)
	}
}

func TestAdjustFloatClamps(t *testing.T) {
	ctrl := core.ParameterControl{Step: 0.01, Min: 0, Max: 0.3, HasMin: true, HasMax: true}

	got, ok := adjustFloat(ctrl, 0.1, 1)
	if !ok || got < 0.11-1e-12 || got > 0.11+1e-12 {
		t.Fatalf("adjustFloat up = %v, %v", got, ok)
	}
	got, ok = adjustFloat(ctrl, 0.295, 1)
	if !ok || got != 0.3 {
		t.Fatalf("adjustFloat near max = %v, %v", got, ok)
	}
	if _, ok := adjustFloat(ctrl, 0.3, 1); ok {
		t.Fatal("adjustFloat at max should report no change")
	}
	if _, ok := adjustFloat(ctrl, 0, -1); ok {
		t.Fatal("adjustFloat at min should report no change")
	}
	if _, ok := adjustFloat(ctrl, 0.1, 0); ok {
		t.Fatal("zero direction should report no change")
	}
}

func TestFormatFloatPrecisionFollowsStep(t *testing.T) {
	cases := []struct {
		step float64
		want string
	}{
		{0.0005, "0.1235"},
		{0.005, "0.123"},
		{0.01, "0.12"},
		{0.5, "0.1"},
		{0, "0.12"},
	}
	for _, tc := range cases {
		if got := formatFloat(core.ParameterControl{Step: tc.step}, 0.12345); got != tc.want {
			t.Errorf("step %g: got %q, want %q", tc.step, got, tc.want)
		}
	}
}

func TestStatusLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Grid", Params: []core.Parameter{core.IntParam("w", "Width", 300)}},
		{Name: "Status", Params: []core.Parameter{
			core.IntParam("step", "Step", 12),
			core.FloatParam("mass", "Total mass", 30000.123456),
		}},
		{Name: "Flow", Params: []core.Parameter{core.FloatParam("tau", "Tau", 0.56)}},
	}}
	got := statusLines(snap, []string{"Flow", "Status"})
	want := []string{"Tau: 0.56", "Step: 12", "Total mass: 3e+04"}
	if len(got) != len(want) {
		t.Fatalf("statusLines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestControlRects(t *testing.T) {
	top, minus, plus := controlRects(1, 200)
	if top != controlsTop+lineHeight {
		t.Fatalf("top = %d", top)
	}
	if plus.Max.X != 200-panelPadding || plus.Dx() != buttonSize {
		t.Fatalf("plus = %v", plus)
	}
	if minus.Max.X != plus.Min.X-buttonGap {
		t.Fatalf("minus = %v", minus)
	}
	if !pointInRect(plus.Min.X, plus.Min.Y, plus) || pointInRect(plus.Max.X, plus.Min.Y, plus) {
		t.Fatal("pointInRect must include the min edge and exclude the max edge")
	}
	if pointInRect(0, 0, image.Rectangle{}) {
		t.Fatal("empty rectangle contains nothing")
	}
}

func TestVectorSamplesCoverGrid(t *testing.T) {
	samples, span := vectorSamples(core.Size{W: 300, H: 100}, 4)
	if len(samples) == 0 {
		t.Fatal("no samples")
	}
	if span != 36 {
		t.Fatalf("span = %v, want 36", span)
	}
	for _, s := range samples {
		if s.cx < 0 || s.cx > 300 || s.cy < 0 || s.cy > 100 {
			t.Fatalf("sample outside grid: %+v", s)
		}
		if s.sx != s.cx*4 || s.sy != s.cy*4 {
			t.Fatalf("screen position not scaled: %+v", s)
		}
	}
	if got, _ := vectorSamples(core.Size{}, 4); got != nil {
		t.Fatalf("empty grid produced %d samples", len(got))
	}
}

func TestOutlineMask(t *testing.T) {
	// 5x5 with a solid 3x3 block in the middle.
	mask := make([]bool, 25)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			mask[y*5+x] = true
		}
	}
	out := outlineMask(mask, 5, 5)
	count := 0
	for _, v := range out {
		if v {
			count++
		}
	}
	if count != 8 {
		t.Fatalf("outline has %d cells, want 8", count)
	}
	if out[2*5+2] {
		t.Fatal("the centre of the block is not on the outline")
	}
}

func TestArrowColorRange(t *testing.T) {
	lo, hi := arrowColor(-1), arrowColor(2)
	if lo != arrowColor(0) || hi != arrowColor(1) {
		t.Fatal("arrowColor must clamp its input")
	}
	if lo.A >= hi.A {
		t.Fatalf("faster arrows should be more opaque: %v vs %v", lo, hi)
	}
}
