package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/component"
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/physics"
	"github.com/lixenwraith/skykernel/scenario"
	"github.com/lixenwraith/skykernel/spatial"
)

// cellAspect is the height of a terminal cell over its width
const cellAspect = 2.0

// View is the camera pose the screen is rendered from
type View struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	FovY        float64
	NearClip    float64
	Width       int
	Height      int
}

// Project maps a geocentric point into screen cells
// Body axes are x forward, y right, z down; points behind the near clip are rejected
func (v View) Project(p mgl64.Vec3) (x, y int, depth float64, ok bool) {
	rel := v.Orientation.Conjugate().Rotate(p.Sub(v.Position))
	if rel[0] <= v.NearClip || v.Width <= 0 || v.Height <= 0 {
		return 0, 0, 0, false
	}
	// focal length in rows
	f := float64(v.Height) / 2 / math.Tan(v.FovY/2)
	sx := float64(v.Width)/2 + rel[1]/rel[0]*f*cellAspect
	sy := float64(v.Height)/2 + rel[2]/rel[0]*f
	x, y = int(math.Round(sx)), int(math.Round(sy))
	if x < 0 || x >= v.Width || y < 0 || y >= v.Height {
		return 0, 0, 0, false
	}
	return x, y, rel[0], true
}

// viewFrom reads the rig pose and camera state
func viewFrom(rig *engine.Entity, width, height int) View {
	pos, _ := engine.Position(rig)
	ori, _ := engine.Orientation(rig)
	v := View{Position: pos, Orientation: ori, FovY: math.Pi / 3, NearClip: 1, Width: width, Height: height}
	if cam, ok := component.CameraOf(rig); ok {
		v.FovY, v.NearClip = cam.FovY, cam.NearClip
	}
	return v
}

type sprite struct {
	x, y  int
	depth float64
	r     rune
	style tcell.Style
}

var (
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTarget  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHorizon = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleOrbit   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleBehind  = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

// draw renders the planet limb, every positioned entity and the status line
func draw(screen tcell.Screen, sc *scenario.Scenario, paused bool) {
	screen.Clear()
	width, height := screen.Size()
	v := viewFrom(sc.Rig, width, height-1)

	drawLimb(screen, v, sc)
	drawOrbits(screen, v, sc)

	target, _ := sc.Target()
	var sprites []sprite
	for _, e := range sc.World.Entities() {
		if e == sc.Rig || e == sc.Planet {
			continue
		}
		pos, ok := engine.Position(e)
		if !ok {
			continue
		}
		x, y, depth, ok := v.Project(pos)
		if !ok {
			continue
		}
		style := styleBody
		if e == target {
			style = styleTarget
		}
		r := '*'
		if name := []rune(e.Name()); len(name) > 0 {
			r = name[0]
		}
		sprites = append(sprites, sprite{x: x, y: y, depth: depth, r: r, style: style})
	}
	// far first so near sprites win the cell
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].depth > sprites[j].depth })
	for _, s := range sprites {
		screen.SetContent(s.x, s.y, s.r, nil, s.style)
	}

	drawStatus(screen, width, height-1, statusLine(sc, v.Position, target, paused), sc.Stepper.LastStep().Behind)
	screen.Show()
}

// drawLimb samples the planet horizon circle as seen from the camera
func drawLimb(screen tcell.Screen, v View, sc *scenario.Scenario) {
	planet, ok := component.PlanetOf(sc.Planet)
	if !ok {
		return
	}
	center, _ := engine.Position(sc.Planet)
	toCenter := center.Sub(v.Position)
	d := toCenter.Len()
	if d <= planet.Radius {
		return
	}
	axis := toCenter.Normalize()
	// the limb circle lies where the cone from the camera grazes the sphere
	limbDist := planet.Radius * planet.Radius / d
	limbRadius := planet.Radius * math.Sqrt(1-(planet.Radius/d)*(planet.Radius/d))
	circleCenter := center.Sub(axis.Mul(limbDist))
	u, w := spatial.OrthonormalBasis(axis)

	const samples = 720
	for i := 0; i < samples; i++ {
		a := 2 * math.Pi * float64(i) / samples
		p := circleCenter.Add(u.Mul(limbRadius * math.Cos(a))).Add(w.Mul(limbRadius * math.Sin(a)))
		if x, y, _, ok := v.Project(p); ok {
			screen.SetContent(x, y, '.', nil, styleHorizon)
		}
	}
}

// orbitSamples is the number of points drawn per tracked orbit
const orbitSamples = 360

// orbitPaths returns geocentric points along every valid tracked orbit
func orbitPaths(sc *scenario.Scenario) [][]mgl64.Vec3 {
	center, _ := engine.Position(sc.Planet)
	var paths [][]mgl64.Vec3
	for _, e := range sc.World.Entities() {
		tracker, ok := engine.FirstComponent[*physics.OrbitTracker](e, engine.CapOrbitTracker)
		if !ok {
			continue
		}
		el, ok := tracker.Elements()
		if !ok || el.SemiLatusRectum <= 0 {
			continue
		}
		points := physics.NewOrbitTraverser(el).Sample(orbitSamples)
		for i := range points {
			points[i] = points[i].Add(center)
		}
		paths = append(paths, points)
	}
	return paths
}

func drawOrbits(screen tcell.Screen, v View, sc *scenario.Scenario) {
	for _, path := range orbitPaths(sc) {
		for _, p := range path {
			if x, y, _, ok := v.Project(p); ok {
				screen.SetContent(x, y, '\u00b7', nil, styleOrbit)
			}
		}
	}
}

// statusLine describes the controller, sim clock and the target relative to the camera
// The target offset is north, east and down in the local frame at the camera
func statusLine(sc *scenario.Scenario, camera mgl64.Vec3, target *engine.Entity, paused bool) string {
	st := sc.Stepper.LastStep()
	name, _, _ := sc.Selector.Selected()
	line := fmt.Sprintf(" %s | t=%.2fs frame=%d", name, st.SimTime, st.Frame)
	if target != nil {
		line += " | " + target.Name()
		if pos, ok := engine.Position(target); ok {
			lla := spatial.GeocentricToLla(pos, sc.Config.Planet.Radius)
			line += fmt.Sprintf(" %.4f° %.4f° %.0fm", lla.Lat*180/math.Pi, lla.Lon*180/math.Pi, lla.Alt)
			ned := spatial.NewNedFrameAt(camera).FromGeocentric(pos)
			line += fmt.Sprintf(" | N%+.0f E%+.0f D%+.0f", ned[0], ned[1], ned[2])
		}
	}
	if paused {
		line += " | PAUSED"
	}
	if st.Behind {
		line += " | BEHIND"
	}
	return line
}

func drawStatus(screen tcell.Screen, width, row int, line string, behind bool) {
	style := styleStatus
	if behind {
		style = styleBehind
	}
	col := 0
	for _, r := range line {
		if col >= width {
			break
		}
		screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		screen.SetContent(col, row, ' ', nil, style)
	}
}
