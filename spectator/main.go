// File: spectator/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/lguibr/asciiring/helpers"
	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/render"
	"github.com/lguibr/pongduel/utils"
	"golang.org/x/net/websocket"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file loaded before the PONGDUEL_* variables are read")
	url := flag.String("url", "ws://localhost:3001/subscribe", "spectator feed")
	origin := flag.String("origin", "http://localhost/", "origin sent with the handshake")
	codecName := flag.String("codec", "", "feed codec, json or msgpack (default from config)")
	columns := flag.Int("columns", 0, "output width in characters (0 uses the terminal width)")
	flag.Parse()

	cfg, err := utils.LoadEnv(*envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *codecName != "" {
		cfg.Codec = *codecName
	}
	codec, err := game.NewCodec(cfg.Codec)
	if err != nil {
		log.Fatal(err)
	}
	width := *columns
	if width <= 0 {
		width = terminalColumns()
	}

	conn, err := websocket.Dial(*url, "", *origin)
	if err != nil {
		log.Fatalf("Error connecting to server: %v", err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	if err := watch(conn, codec, cfg, width); err != nil && ctx.Err() == nil {
		log.Printf("Error reading from server: %v", err)
	}
}

// watch prints every snapshot until the connection fails.
func watch(conn *websocket.Conn, codec game.Codec, cfg utils.Config, width int) error {
	frame := game.NewFrame(cfg.CanvasWidth, cfg.CanvasHeight)
	lastPoint := ""

	for {
		var data []byte
		if err := websocket.Message.Receive(conn, &data); err != nil {
			return err
		}
		msg, err := game.DecodeMessage(codec, data)
		if err != nil {
			log.Printf("Skipping frame: %v", err)
			continue
		}

		switch m := msg.(type) {
		case *game.ScoreChanged:
			lastPoint = fmt.Sprintf("Point for %s.", m.Side)

		case *game.MatchSnapshot:
			w, h := int(m.Arena.Width), int(m.Arena.Height)
			if w > 0 && h > 0 && (w != frame.Width() || h != frame.Height()) {
				frame = game.NewFrame(w, h)
			}
			frame.Paint(func(s game.Surface) { m.Paint(s, cfg.Colors) })

			helpers.ClearScreen()
			fmt.Print(render.RenderToASCII(frame.Rows(), width))
			fmt.Printf("Player 1: %d - Player 2: %d  [%s] %s\n", m.Scores[game.SideLeft], m.Scores[game.SideRight], m.Phase, lastPoint)
		}
	}
}
