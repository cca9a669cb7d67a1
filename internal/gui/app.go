// Package gui renders the lamp in a native window with raylib: the glass
// body, gradient-shaded blobs and a one-line telemetry HUD.
package gui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/solhav/moodlamp/internal/audio"
	"github.com/solhav/moodlamp/internal/engine"
	"github.com/solhav/moodlamp/internal/signal"
)

// Window geometry mirrors the desktop viewer this replaces: a 540×760
// window with a 48 px glass margin.
const (
	windowWidth  = 540
	windowHeight = 760
	lampMargin   = 48

	blobScale = 0.35
	steerStep = 0.02 // per held frame
)

var (
	colBg      = rl.NewColor(15, 15, 22, 255)    // deep night
	colGlass   = rl.NewColor(108, 108, 138, 255) // lamp outline
	colText    = rl.NewColor(230, 230, 240, 255)
	colTextDim = rl.NewColor(110, 110, 130, 255)
)

// App owns the window loop around one engine.
type App struct {
	eng    *engine.Engine
	manual *signal.Manual
	synth  *audio.Synth

	signalName string
	period     float64
	seed       int64
	dt         float64

	running bool
	sound   bool
	quit    bool
	err     error

	// Zoom is spring-animated toward zoomTarget for a soft, fluid feel.
	spring     harmonica.Spring
	zoom       float64
	zoomVel    float64
	zoomTarget float64
}

// NewApp wires a window around eng. When sound is requested the pad synth
// starts immediately; failure to open a device degrades to a silent lamp.
func NewApp(eng *engine.Engine, signalName string, period float64, seed int64, dt float64, sound bool) *App {
	a := &App{
		eng:        eng,
		manual:     signal.NewManual(),
		synth:      audio.NewSynth(),
		signalName: signalName,
		period:     period,
		seed:       seed,
		dt:         dt,
		running:    true,
		spring:     harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.5),
		zoom:       1.0,
		zoomTarget: 1.0,
	}
	if sound {
		a.sound = a.synth.Start() == nil
	}
	return a
}

// Run opens the window and blocks until it closes.
func (a *App) Run() {
	rl.InitWindow(windowWidth, windowHeight, "moodlamp")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	defer func() {
		if a.synth.Active {
			a.synth.Stop()
		}
	}()

	for !a.quit && !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}
}

func (a *App) update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		a.setSignal("sine")
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		a.setSignal("noise")
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		a.setSignal("step")
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		a.setSignal("still")
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.signalName = "manual"
		a.eng.SetSource(a.manual)
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.toggleSound()
	}

	// Held-key steering drifts the manual target.
	if a.signalName == "manual" {
		if rl.IsKeyDown(rl.KeyLeft) {
			a.manual.Nudge(-steerStep, 0, 0)
		}
		if rl.IsKeyDown(rl.KeyRight) {
			a.manual.Nudge(steerStep, 0, 0)
		}
		if rl.IsKeyDown(rl.KeyUp) {
			a.manual.Nudge(0, steerStep, 0)
		}
		if rl.IsKeyDown(rl.KeyDown) {
			a.manual.Nudge(0, -steerStep, 0)
		}
		if rl.IsKeyDown(rl.KeyEqual) {
			a.manual.Nudge(0, 0, steerStep)
		}
		if rl.IsKeyDown(rl.KeyMinus) {
			a.manual.Nudge(0, 0, -steerStep)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.zoomTarget += float64(wheel) * 0.1
		if a.zoomTarget < 0.6 {
			a.zoomTarget = 0.6
		}
		if a.zoomTarget > 1.6 {
			a.zoomTarget = 1.6
		}
	}
	a.zoom, a.zoomVel = a.spring.Update(a.zoom, a.zoomVel, a.zoomTarget)

	if a.running {
		if _, err := a.eng.Tick(a.dt); err != nil {
			a.err = err
			a.running = false
		} else {
			a.err = nil
			if a.sound {
				tel := a.eng.Telemetry()
				nv, na, _ := tel.Smoothed.Normalized()
				a.synth.SetMood(nv, na, tel.Energy)
			}
		}
	}
}

func (a *App) setSignal(name string) {
	src, err := signal.New(name, a.period, a.seed)
	if err != nil {
		a.err = err
		return
	}
	a.signalName = name
	a.eng.SetSource(src)
}

func (a *App) reset() {
	a.eng.Reset()
	a.manual = signal.NewManual()
	if a.signalName == "manual" {
		a.eng.SetSource(a.manual)
	} else {
		a.setSignal(a.signalName)
	}
	a.err = nil
	a.running = true
}

func (a *App) toggleSound() {
	if a.sound {
		a.synth.Stop()
		a.sound = false
		return
	}
	a.sound = a.synth.Start() == nil
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	a.drawLamp()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawLamp() {
	innerW := float64(windowWidth - 2*lampMargin)
	innerH := float64(windowHeight - 2*lampMargin)
	cx := float64(windowWidth) / 2
	cy := float64(windowHeight) / 2
	rScale := math.Min(windowWidth, windowHeight) * blobScale

	rl.DrawRectangleLinesEx(rl.NewRectangle(
		lampMargin, lampMargin, float32(innerW), float32(innerH)), 2, colGlass)

	for _, b := range a.eng.Blobs() {
		x := float64(lampMargin) + b.Pos.X*innerW
		y := float64(lampMargin) + (1-b.Pos.Y)*innerH

		// Zoom scales the scene about the lamp center.
		x = cx + (x-cx)*a.zoom
		y = cy + (y-cy)*a.zoom
		r := b.Radius * rScale * a.zoom

		body := toRl(b.Color, 255)
		halo := toRl(b.Color, 0)
		rl.DrawCircleGradient(int32(x), int32(y), float32(r*1.35), body, halo)
		rl.DrawCircle(int32(x), int32(y), float32(r), body)
	}
}

func (a *App) drawHUD() {
	rl.DrawText("moodlamp", 16, 12, 20, colText)
	rl.DrawText(fmt.Sprintf(":: %s", a.signalName), 120, 16, 12, colTextDim)

	status := "RUNNING"
	col := colText
	if a.err != nil {
		status = "ERROR"
		col = rl.Red
	} else if !a.running {
		status = "PAUSED"
		col = colTextDim
	}
	rl.DrawText(status, windowWidth-88, 16, 12, col)

	tel := a.eng.Telemetry()
	hud := fmt.Sprintf("Smoothed VAD: V=%+.2f, A=%+.2f, D=%+.2f   Energy=%.3f   Blobs=%d   Turb=%.2f",
		tel.Smoothed.Valence, tel.Smoothed.Arousal, tel.Smoothed.Dominance,
		tel.Energy, tel.BlobCount, tel.Turbulence)
	rl.DrawText(hud, 16, windowHeight-30, 12, colText)

	sound := "SOUND [OFF]"
	if a.sound {
		sound = "SOUND [ON]"
	}
	rl.DrawText(sound, 16, windowHeight-46, 12, colTextDim)

	help := "[SPACE] PAUSE  [R] RESET  [1-4] SIGNAL  [M] MANUAL  [S] SOUND  [Q] QUIT"
	rl.DrawText(help, 16, 36, 10, colTextDim)

	if a.signalName == "manual" {
		tgt := a.manual.Target()
		steer := fmt.Sprintf("steer V=%+.2f A=%+.2f D=%+.2f  (arrows, +/-)",
			tgt.Valence, tgt.Arousal, tgt.Dominance)
		rl.DrawText(steer, 16, 52, 10, colTextDim)
	}
}

func toRl(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, alpha)
}
