package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sqweek/dialog"
	"golang.org/x/image/colornames"

	"github.com/example/revealit/internal/config"
	"github.com/example/revealit/internal/fittext"
	"github.com/example/revealit/internal/progress"
	"github.com/example/revealit/internal/reveal"
	"github.com/example/revealit/internal/tile"
	"github.com/example/revealit/internal/typeface"
)

const (
	uiHeight      = 88
	swatchSize    = 48
	swatchGap     = 8
	labelFontSize = 14

	instructionsText = "Draw on me<br>in every color"
	contactText      = "Say hello: hello@example.com"
)

var (
	canvasBackground = color.Black
	toolbarColor     = color.RGBA{40, 40, 40, 255}
	instructionColor = color.RGBA{0xcc, 0xcc, 0xcc, 255}
)

// canvasHost is the part of the window below the toolbar.
type canvasHost struct {
	g *Game
}

func (h canvasHost) DisplaySize() (int, int) {
	return h.g.viewW, h.g.viewH - uiHeight
}

func (h canvasHost) Origin() gg.Point {
	return gg.Point{X: 0, Y: uiHeight}
}

type Game struct {
	cfg *config.Config
	log *slog.Logger

	fonts    *typeface.Cache
	tiles    []tile.Tile
	fills    []reveal.FillFunc
	painter  *tile.Painter
	progress *progress.State
	surface  *reveal.Surface

	buttons []*button

	viewW, viewH int
	lastPoll     time.Time
	lastMouseBtn bool
	dragging     bool
	lastPos      gg.Point
	touchIDs     []ebiten.TouchID

	canvasImg   *ebiten.Image
	uploadedGen uint64

	instructions fittext.Result
}

func NewGame(cfg *config.Config, logger *slog.Logger) (*Game, error) {
	fonts, err := typeface.ByName(cfg.Font)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:   cfg,
		log:   logger,
		fonts: fonts,
		tiles: tile.Default(rng),
		viewW: cfg.WindowWidth,
		viewH: cfg.WindowHeight,
	}
	g.painter = &tile.Painter{
		Fonts:   fonts,
		Compact: cfg.Compact,
		Debug:   cfg.DebugFills,
		Rand:    rng,
		Logger:  logger,

		BareOnOverflow: true,
	}
	for _, t := range g.tiles {
		g.fills = append(g.fills, g.painter.FillFor(t))
	}
	g.progress = progress.New(len(g.tiles))

	g.surface, err = reveal.New(canvasHost{g: g},
		reveal.WithOnDraw(g.onDraw),
		reveal.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	g.setupUI()
	g.layoutInstructions()
	logger.Debug("game ready", "seed", seed, "tiles", len(g.tiles), "font", fonts.Name())
	return g, nil
}

func (g *Game) setupUI() {
	for i, t := range g.tiles {
		x := 20 + i*(swatchSize+swatchGap)
		g.buttons = append(g.buttons, &button{
			rect: image.Rect(x, 20, x+swatchSize, 20+swatchSize),
			bg:   t.Background,
			border: func() int {
				if g.progress.Active() == i {
					return 8
				}
				return 2
			},
			onClick: func() { g.selectTile(i) },
		})
	}
	cta := func() bool { return g.progress.ShowCTA() }
	g.buttons = append(g.buttons,
		&button{label: "SAVE_SNAPSHOT", bg: colornames.Yellow, fg: color.Black, visible: cta, onClick: g.saveImage},
		&button{label: "CONTACT_ME", bg: colornames.Yellow, fg: color.Black, visible: cta, onClick: g.contact},
	)
	g.placeCTA()
}

// placeCTA pins the call-to-action buttons to the bottom-right corner.
func (g *Game) placeCTA() {
	const w, h, gap = 180, 44, 12
	n := len(g.tiles)
	for i, b := range g.buttons[n:] {
		x := g.viewW - w - 24
		y := g.viewH - (2-i)*(h+gap) - 12
		b.rect = image.Rect(x, y, x+w, y+h)
	}
}

func (g *Game) selectTile(i int) {
	if g.progress.Select(i) {
		g.log.Debug("tile selected", "tile", g.tiles[i].Name)
	}
}

func (g *Game) onDraw() {
	if !g.progress.Drawn() {
		return
	}
	t := g.tiles[g.progress.Active()]
	g.log.Info("tile revealed", "tile", t.Name, "distinct", g.progress.DistinctTiles())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewW || outsideHeight != g.viewH {
		g.viewW, g.viewH = outsideWidth, outsideHeight
		g.placeCTA()
		g.layoutInstructions()
	}
	return outsideWidth, outsideHeight
}

func (g *Game) layoutInstructions() {
	w, h := canvasHost{g: g}.DisplaySize()
	res, err := fittext.Fit(g.fonts, instructionsText, fittext.Options{
		Rect:        fittext.Rect{X: float64(w) * 0.1, Y: float64(h) * 0.2, Width: float64(w) * 0.8, Height: float64(h) * 0.5},
		MinFontSize: 12,
		MaxFontSize: 160,
		CenterX:     true,
		CenterY:     true,
		BR:          "<br>",
		Logger:      g.log,
	})
	if err != nil {
		// Tiny windows just skip the overlay.
		g.log.Debug("instructions do not fit", "err", err)
		g.instructions = fittext.Result{}
		return
	}
	g.instructions = res
}

// pointer returns the single active pointer: the first touch, else the mouse.
func (g *Game) pointer() (gg.Point, bool) {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(g.touchIDs[0])
		return gg.Point{X: float64(x), Y: float64(y)}, true
	}
	mx, my := ebiten.CursorPosition()
	return gg.Point{X: float64(mx), Y: float64(my)}, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (g *Game) Update() error {
	if now := time.Now(); now.Sub(g.lastPoll) >= reveal.PollInterval {
		g.lastPoll = now
		if err := g.poll(); err != nil {
			return err
		}
	}

	pos, pressed := g.pointer()
	if pressed && !g.lastMouseBtn {
		for _, b := range g.buttons {
			if b.contains(int(pos.X), int(pos.Y)) {
				b.onClick()
				g.lastMouseBtn = pressed
				g.dragging = false
				return nil
			}
		}
	}
	g.lastMouseBtn = pressed

	if !pressed || pos.Y < uiHeight {
		g.dragging = false
		return nil
	}
	var delta gg.Point
	if g.dragging {
		delta = gg.Point{X: pos.X - g.lastPos.X, Y: pos.Y - g.lastPos.Y}
		if delta == (gg.Point{}) {
			return nil
		}
	}
	g.dragging = true
	g.lastPos = pos
	return g.surface.HandleDrag(pos, delta, g.fills[g.progress.Active()])
}

func (g *Game) poll() error {
	resized, err := g.surface.ResizeIfNeeded()
	if err != nil {
		return err
	}
	if resized {
		g.dragging = false
	}
	if g.cfg.DebugFills {
		return g.surface.PaintAll(g.fills[g.progress.Active()])
	}
	return nil
}

// uploadCanvas copies the surface pixels to the GPU image when they changed.
func (g *Game) uploadCanvas() {
	rgba := g.surface.Image()
	if rgba == nil {
		return
	}
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		g.canvasImg = nil
		return
	}
	if g.canvasImg == nil || g.canvasImg.Bounds().Dx() != w || g.canvasImg.Bounds().Dy() != h {
		if g.canvasImg != nil {
			g.canvasImg.Dispose()
		}
		g.canvasImg = ebiten.NewImage(w, h)
		g.uploadedGen = 0
	}
	if gen := g.surface.Generation(); gen != g.uploadedGen {
		g.canvasImg.WritePixels(rgba.Pix)
		g.uploadedGen = gen
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)

	g.uploadCanvas()
	if g.canvasImg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1/reveal.ResolutionMultiplier, 1/reveal.ResolutionMultiplier)
		op.GeoM.Translate(0, uiHeight)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.canvasImg, op)
	}

	if g.progress.ShowInstructions() && len(g.instructions.Lines) > 0 {
		face := g.fonts.Face(g.instructions.FontSize)
		for _, l := range g.instructions.Lines {
			x := l.X - g.fonts.Measure(l.Text, g.instructions.FontSize)/2
			text.Draw(screen, l.Text, face, int(x), int(l.Y)+uiHeight, instructionColor)
		}
	}

	w := screen.Bounds().Dx()
	vector.DrawFilledRect(screen, 0, 0, float32(w), uiHeight, toolbarColor, false)
	labelFace := g.fonts.Face(labelFontSize)
	for _, b := range g.buttons {
		b.draw(screen, labelFace)
	}

	status := fmt.Sprintf("tile: %s  revealed: %d/%d",
		g.tiles[g.progress.Active()].Name, g.progress.DistinctTiles(), len(g.tiles))
	ebitenutil.DebugPrintAt(screen, status, 20+len(g.tiles)*(swatchSize+swatchGap)+20, 36)
}

func (g *Game) saveImage() {
	now := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("drawing_%s.png", now)

	startDir := g.cfg.SaveDirectory
	if startDir == "" {
		startDir = "."
	}
	filePath, err := dialog.File().Filter("PNG image", "png").Title("Save snapshot").SetStartDir(startDir).Save()
	switch {
	case errors.Is(err, dialog.ErrCancelled):
		return
	case err != nil:
		g.log.Warn("save dialog unavailable, using save directory", "err", err)
		filePath = g.cfg.SavePath(filename)
	case !strings.EqualFold(filepath.Ext(filePath), ".png"):
		filePath += ".png"
	}

	if err := writePNG(filePath, g.surface.Image()); err != nil {
		g.log.Error("save failed", "path", filePath, "err", err)
		return
	}
	g.log.Info("snapshot saved", "path", filePath)
}

func writePNG(path string, img image.Image) error {
	if img == nil {
		return errors.New("nothing drawn yet")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (g *Game) contact() {
	dialog.Message("%s", contactText).Title("Contact").Info()
}
