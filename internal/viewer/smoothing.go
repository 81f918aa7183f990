package viewer

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/cubecam/internal/scene"
	"github.com/taigrr/cubecam/pkg/controls"
	"github.com/taigrr/cubecam/pkg/math3d"
)

const poseAxes = 7 // X, Y, Z, roll, pitch, yaw, scale

// Smoother eases the displayed pose toward the latest snapshot with one
// harmonica spring per axis. It only affects what is drawn; the store keeps
// the exact slider values. Overlay flags switch immediately.
type Smoother struct {
	spring  harmonica.Spring
	enabled bool
	primed  bool

	target   scene.Snapshot
	pos, vel [2][poseAxes]float64 // camera, cube
}

// NewSmoother creates a smoother stepped fps times a second. A frequency of
// 0 disables easing.
func NewSmoother(fps int, frequency, damping float64) *Smoother {
	return &Smoother{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		enabled: frequency > 0,
	}
}

// SetTarget sets the snapshot to ease toward. The first target is adopted
// without easing.
func (s *Smoother) SetTarget(snap scene.Snapshot) {
	s.target = snap
	if !s.primed || !s.enabled {
		s.pos = [2][poseAxes]float64{poseValues(snap.Camera), poseValues(snap.Cube)}
		s.vel = [2][poseAxes]float64{}
		s.primed = true
	}
}

// Step advances the springs one frame and returns the pose to draw.
func (s *Smoother) Step() scene.Snapshot {
	if s.enabled {
		targets := [2][poseAxes]float64{poseValues(s.target.Camera), poseValues(s.target.Cube)}
		for b := range s.pos {
			for i := range s.pos[b] {
				s.pos[b][i], s.vel[b][i] = s.spring.Update(s.pos[b][i], s.vel[b][i], targets[b][i])
			}
		}
	}
	return scene.Snapshot{
		Camera:   poseFrom(s.pos[0]),
		Cube:     poseFrom(s.pos[1]),
		Overlays: s.target.Overlays,
	}
}

// Settled reports whether every axis is within eps of the target.
func (s *Smoother) Settled(eps float64) bool {
	targets := [2][poseAxes]float64{poseValues(s.target.Camera), poseValues(s.target.Cube)}
	for b := range s.pos {
		for i := range s.pos[b] {
			if math.Abs(s.pos[b][i]-targets[b][i]) > eps {
				return false
			}
		}
	}
	return true
}

func poseValues(p controls.Pose) [poseAxes]float64 {
	return [poseAxes]float64{
		p.Translation.X, p.Translation.Y, p.Translation.Z,
		p.Roll, p.Pitch, p.Yaw, p.Scale,
	}
}

func poseFrom(v [poseAxes]float64) controls.Pose {
	return controls.Pose{
		Translation: math3d.V3(v[0], v[1], v[2]),
		Roll:        v[3],
		Pitch:       v[4],
		Yaw:         v[5],
		Scale:       v[6],
	}
}

// Throttle gates parameter re-evaluation to at most once per interval.
type Throttle struct {
	interval time.Duration
	next     time.Time
}

// NewThrottle creates a throttle; an interval of 0 never blocks.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Ready reports whether an evaluation is due at now and, if so, starts the
// next interval.
func (t *Throttle) Ready(now time.Time) bool {
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
