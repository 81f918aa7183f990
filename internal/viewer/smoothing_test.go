package viewer

import (
	"testing"
	"time"

	"github.com/taigrr/cubecam/internal/scene"
	"github.com/taigrr/cubecam/pkg/controls"
	"github.com/taigrr/cubecam/pkg/math3d"
)

func snapAt(x, yaw float64, normals bool) scene.Snapshot {
	return scene.Snapshot{
		Camera:   controls.Pose{Translation: math3d.V3(x, 0, 0), Yaw: yaw, Scale: 1},
		Cube:     controls.Pose{Scale: 2},
		Overlays: controls.Overlays{Normals: normals, Planes: true},
	}
}

func TestSmootherFirstTargetImmediate(t *testing.T) {
	s := NewSmoother(60, 8, 1)
	s.SetTarget(snapAt(5000, 90, false))
	got := s.Step()
	if got.Camera.Translation.X != 5000 || got.Camera.Yaw != 90 || got.Cube.Scale != 2 {
		t.Errorf("first step = %+v, want the target", got)
	}
}

func TestSmootherEases(t *testing.T) {
	s := NewSmoother(60, 8, 1)
	s.SetTarget(snapAt(0, 0, false))
	s.SetTarget(snapAt(1000, 0, true))

	first := s.Step()
	if first.Camera.Translation.X <= 0 || first.Camera.Translation.X >= 1000 {
		t.Errorf("first eased step X = %v, want strictly between 0 and 1000", first.Camera.Translation.X)
	}
	if !first.Overlays.Normals {
		t.Error("overlay flags should switch immediately")
	}

	for range 300 {
		s.Step()
	}
	if !s.Settled(0.5) {
		t.Errorf("not settled after 5s: %+v", s.Step())
	}
}

func TestSmootherDisabled(t *testing.T) {
	s := NewSmoother(60, 0, 1)
	s.SetTarget(snapAt(0, 0, false))
	s.SetTarget(snapAt(1000, 45, false))
	got := s.Step()
	if got.Camera.Translation.X != 1000 || got.Camera.Yaw != 45 {
		t.Errorf("disabled smoother = %+v, want target", got.Camera)
	}
}

func TestThrottle(t *testing.T) {
	t0 := time.Unix(1000, 0)
	th := NewThrottle(50 * time.Millisecond)

	steps := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{10 * time.Millisecond, false},
		{49 * time.Millisecond, false},
		{50 * time.Millisecond, true},
		{60 * time.Millisecond, false},
		{200 * time.Millisecond, true},
	}
	for _, s := range steps {
		if got := th.Ready(t0.Add(s.at)); got != s.want {
			t.Errorf("Ready(+%v) = %v, want %v", s.at, got, s.want)
		}
	}

	always := NewThrottle(0)
	for range 3 {
		if !always.Ready(t0) {
			t.Error("zero interval throttle blocked")
		}
	}
}
