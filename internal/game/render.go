package game

import (
	"fmt"

	"driftline/internal/core"
	"driftline/internal/race"
)

// Rendering glyphs.
const (
	wallChar       = '█'
	obstacleChar   = '▒'
	startChar      = '┆'
	checkpointChar = '◌'
	nextCheckChar  = '◎'
	turretChar     = '☼'
	boostChar      = '>'
	gripChar       = '≡'
	playerChar     = '@'
	botChar        = '&'
	particleChar   = '·'
)

// Render draws the whole arena scaled down to the terminal, with one HUD
// row at the top.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.arena == nil {
		return
	}

	// Row 0 is the HUD; the track uses the rest.
	view := viewport{
		offsetY: 1,
		sx:      float64(dst.Width()) / g.drift.World.Width,
		sy:      float64(dst.Height()-1) / g.drift.World.Height,
	}

	for _, w := range g.arena.Walls {
		g.fillRect(dst, view, w.Rect(), wallChar, core.ColorGray)
	}
	g.fillRect(dst, view, g.arena.StartLine.Rect(), startChar, core.ColorBrightWhite)
	for _, pad := range g.arena.BoostPads {
		g.fillRect(dst, view, pad, boostChar, core.ColorBlue)
	}
	for _, pad := range g.arena.GripPads {
		g.fillRect(dst, view, pad, gripChar, core.ColorCyan)
	}
	for _, obs := range g.arena.Obstacles {
		g.fillRect(dst, view, obs, obstacleChar, core.ColorWhite)
	}

	playerInfo, _ := g.engine.LapInfo(PlayerCar, g.Now())
	for _, cp := range g.arena.Checkpoints {
		x, y := view.toScreen(cp.Center)
		glyph, col := checkpointChar, core.ColorYellow
		if cp.Index == playerInfo.Progress {
			glyph, col = nextCheckChar, core.ColorBrightGreen
		}
		dst.SetColored(x, y, glyph, col)
	}

	for i, t := range g.arena.Turrets {
		x, y := view.toScreen(t.Center)
		col := core.ColorGray
		switch glow := g.arena.TurretState[i].Glow; {
		case glow > 0.7:
			col = core.ColorBrightRed
		case glow > 0.2:
			col = core.ColorOrange
		}
		dst.SetColored(x, y, turretChar, col)
	}

	g.particles.Each(func(p Particle) {
		x, y := view.toScreen(p.Pos)
		dst.SetColored(x, y, particleChar, p.Col)
	})

	for i, car := range g.cars {
		x, y := view.toScreen(car.Position())
		if i == PlayerCar {
			dst.SetColored(x, y, playerChar, core.ColorBrightGreen)
		} else {
			dst.SetColored(x, y, botChar, core.ColorBrightRed)
		}
	}

	g.renderHUD(dst, playerInfo)

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, "PAUSED - press P to resume")
	}
	if g.gameOver {
		msg := "YOU WIN!"
		if g.winner != PlayerCar {
			msg = "CPU WINS"
		}
		dst.DrawTextCentered(dst.Height()/2, msg)
		dst.DrawTextCentered(dst.Height()/2+1, "press R to restart")
	}
}

func (g *Game) renderHUD(dst *core.Screen, info race.LapInfo) {
	now := g.Now()
	cur, _ := g.engine.CurrentLapMS(PlayerCar, now)
	hud := fmt.Sprintf(" lap %d/%d  cur %.1fs  last %.2fs  best %.2fs",
		info.Lap+1, TargetLaps, cur/1000, info.LastLap, info.BestLap)
	dst.DrawText(0, 0, hud)

	if info.Penalized {
		dst.DrawTextColored(len(hud)+2, 0, "PENALTY", core.ColorBrightRed)
	}
	if g.notice != "" && now < g.noticeUntil {
		dst.DrawTextColored(dst.Width()-len(g.notice)-1, 0, g.notice, core.ColorBrightYellow)
	}
}

type viewport struct {
	offsetY int
	sx, sy  float64
}

func (v viewport) toScreen(p core.Vec2) (int, int) {
	return int(p.X * v.sx), v.offsetY + int(p.Y*v.sy)
}

// fillRect rasterizes a world-space rectangle by sampling every screen
// cell inside its axis-aligned bounding box. Coarse but correct for
// rotated bars at terminal resolution.
func (g *Game) fillRect(dst *core.Screen, v viewport, r core.OrientedRect, glyph rune, col core.Color) {
	half := (r.W + r.H) / 2
	minX, minY := v.toScreen(core.Vec2{X: r.Center.X - half, Y: r.Center.Y - half})
	maxX, maxY := v.toScreen(core.Vec2{X: r.Center.X + half, Y: r.Center.Y + half})

	// Sample radius covers one cell so thin bars stay contiguous.
	cellR := 0.5 / v.sx
	if alt := 0.5 / v.sy; alt > cellR {
		cellR = alt
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			world := core.Vec2{
				X: (float64(x) + 0.5) / v.sx,
				Y: (float64(y-v.offsetY) + 0.5) / v.sy,
			}
			if core.CircleRectOverlap(core.Circle{Center: world, Radius: cellR}, r) {
				dst.SetColored(x, y, glyph, col)
			}
		}
	}
}
