// File: main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/server"
	"github.com/lguibr/pongduel/utils"
)

// desktop hosts the match in a window. The MatchActor paints the Frame;
// Draw only copies it to the screen.
type desktop struct {
	session *game.Session
	pixels  []byte
}

// Update forwards key transitions to the input router.
func (d *desktop) Update() error {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		d.session.Input.OnKeyChange(k.String(), true)
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		d.session.Input.OnKeyChange(k.String(), false)
	}
	return nil
}

func (d *desktop) Draw(screen *ebiten.Image) {
	d.pixels = d.session.Frame.CopyRGBA(d.pixels)
	screen.WritePixels(d.pixels)
}

func (d *desktop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.session.Config.CanvasWidth, d.session.Config.CanvasHeight
}

func main() {
	envFile := flag.String("env", ".env", "dotenv file loaded before the PONGDUEL_* variables are read")
	flag.Parse()

	cfg, err := utils.LoadEnv(*envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	engine := bollywood.NewEngine()
	session, err := game.StartSession(engine, cfg)
	if err != nil {
		log.Fatalf("start match: %v", err)
	}

	spectators := server.New(engine, session.BroadcasterPID, session.Snapshots)
	httpServer := &http.Server{Addr: cfg.SpectatorAddr, Handler: spectators.Handler()}
	go func() {
		log.Printf("Spectator feed listening on %s", cfg.SpectatorAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Spectator feed stopped: %v", err)
		}
	}()

	ebiten.SetWindowSize(cfg.CanvasWidth, cfg.CanvasHeight)
	ebiten.SetWindowTitle("pongduel")
	if err := ebiten.RunGame(&desktop{session: session}); err != nil {
		log.Printf("window closed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Spectator feed shutdown: %v", err)
	}
	engine.Shutdown(5 * time.Second)
}
