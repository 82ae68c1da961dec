package game

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/spritewalk/ecs"
	debugui_ebiten "github.com/plus3/spritewalk/ecs/debugui/ebiten"
	"github.com/plus3/spritewalk/internal/config"
	"github.com/plus3/spritewalk/internal/input"
	"github.com/plus3/spritewalk/internal/render"
)

// EbitenGame adapts a Loop to ebiten.Game. Update runs one tick and Draw
// renders it; ebiten paces Update at the configured TPS.
type EbitenGame struct {
	loop         *Loop
	source       input.Source
	canvas       *render.EbitenCanvas
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	width        int
	height       int

	// Draw cannot return an error, so a render failure is held here and
	// returned from the next Update, which stops ebiten.RunGame.
	drawErr error
}

func NewEbitenGame(loop *Loop, source input.Source, canvas *render.EbitenCanvas, width, height int) *EbitenGame {
	return &EbitenGame{
		loop:   loop,
		source: source,
		canvas: canvas,
		width:  width,
		height: height,
	}
}

func (g *EbitenGame) Update() error {
	if g.drawErr != nil {
		return g.drawErr
	}

	if g.imguiBackend != nil {
		g.imguiBackend.Get().BeginFrame()
		defer g.imguiBackend.Get().EndFrame()
	}

	if g.loop.Step(g.source.Poll(g.loop.Ticks())) == Terminated {
		return ebiten.Termination
	}
	return nil
}

func (g *EbitenGame) Draw(screen *ebiten.Image) {
	if g.drawErr != nil {
		return
	}

	g.canvas.SetScreen(screen)
	if err := g.loop.Render(g.canvas); err != nil {
		g.drawErr = err
		return
	}

	if g.imguiBackend != nil {
		g.imguiBackend.Get().Draw(screen)
	}
}

func (g *EbitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Get().Layout(g.width, g.height)
	}
	return g.width, g.height
}

// RunEbiten opens the window and runs loop until the player quits or a
// frame fails to render.
func RunEbiten(cfg config.Config, loop *Loop, sheet image.Image, log *zap.Logger) error {
	game := NewEbitenGame(loop, &input.EbitenPoller{}, render.NewEbitenCanvas(sheet), cfg.Window.Width, cfg.Window.Height)

	if cfg.DebugUI {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		ecs.NewSingleton(loop.Storage(), backend)
		game.imguiBackend = ecs.NewSingleton[debugui_ebiten.ImguiBackend](loop.Storage())
		loop.EnableDebugUI()
		log.Info("debug overlay enabled")
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowClosingHandled(true)

	log.Info("window opened",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.TPS),
	)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
