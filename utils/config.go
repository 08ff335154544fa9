// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/lguibr/pongduel/types"
)

// Environment variables read by LoadEnv.
const (
	EnvConfigPath = "PONGDUEL_CONFIG"
	EnvAddr       = "PONGDUEL_ADDR"
	EnvCodec      = "PONGDUEL_CODEC"
	EnvTick       = "PONGDUEL_TICK"
)

// Wire codecs understood by the spectator feed.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// KeyBindings names the three keys driving one paddle.
type KeyBindings struct {
	Up      string `toml:"up" json:"up"`
	Down    string `toml:"down" json:"down"`
	Special string `toml:"special" json:"special"`
}

// Palette holds the colours used to paint the match.
type Palette struct {
	Canvas  types.RGBPixel `toml:"canvas" json:"canvas"`
	Neutral types.RGBPixel `toml:"neutral" json:"neutral"`
	Player1 types.RGBPixel `toml:"player1" json:"player1"`
	Player2 types.RGBPixel `toml:"player2" json:"player2"`
}

// Config holds all configurable game parameters. It is built once at
// startup and passed by value; nothing mutates it afterwards.
type Config struct {
	// Timing
	TickPeriod time.Duration `toml:"tick_period" json:"tickPeriod"` // Shared period of every schedule
	AskTimeout time.Duration `toml:"ask_timeout" json:"askTimeout"` // Max wait for a child actor reply

	// Canvas
	CanvasWidth  int `toml:"canvas_width" json:"canvasWidth"`
	CanvasHeight int `toml:"canvas_height" json:"canvasHeight"`

	// Paddle Properties
	PaddleSize      int `toml:"paddle_size" json:"paddleSize"`           // Length of the bar
	PaddleThickness int `toml:"paddle_thickness" json:"paddleThickness"` // Width of the bar
	PaddleSpeed     int `toml:"paddle_speed" json:"paddleSpeed"`         // Pixels per tick

	// Ball Properties
	BallSize  int     `toml:"ball_size" json:"ballSize"`   // Side of the square hit-box
	BallSpeed float64 `toml:"ball_speed" json:"ballSpeed"` // Units per second

	// Spectator feed
	BroadcastEvery int    `toml:"broadcast_every" json:"broadcastEvery"` // Controller ticks between snapshots
	SpectatorAddr  string `toml:"spectator_addr" json:"spectatorAddr"`
	Codec          string `toml:"codec" json:"codec"`

	Player1Keys KeyBindings `toml:"player1_keys" json:"player1Keys"`
	Player2Keys KeyBindings `toml:"player2_keys" json:"player2Keys"`
	Colors      Palette     `toml:"colors" json:"colors"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		TickPeriod: 16 * time.Millisecond,
		AskTimeout: 50 * time.Millisecond,

		CanvasWidth:  1024,
		CanvasHeight: 768,

		PaddleSize:      100,
		PaddleThickness: 20,
		PaddleSpeed:     10,

		BallSize:  20,
		BallSpeed: 500,

		BroadcastEvery: 2, // ~30Hz
		SpectatorAddr:  ":3001",
		Codec:          CodecJSON,

		Player1Keys: KeyBindings{Up: "W", Down: "S", Special: "F"},
		Player2Keys: KeyBindings{Up: "O", Down: "L", Special: "J"},
		Colors: Palette{
			Canvas:  types.Black,
			Neutral: types.White,
			Player1: types.Red,
			Player2: types.Blue,
		},
	}
}

// Arena returns the playing field dimensions.
func (c Config) Arena() Arena {
	return Arena{Width: float64(c.CanvasWidth), Height: float64(c.CanvasHeight)}
}

// CenterPaddleY is the y of a paddle vertically centred on the canvas.
func (c Config) CenterPaddleY() int {
	return (c.CanvasHeight - c.PaddleSize) / 2
}

// CenterBallOnPaddleY is the offset that centres a ball on a paddle.
func (c Config) CenterBallOnPaddleY() int {
	return c.PaddleSize/2 - c.BallSize/2
}

// BallStep is the distance the ball covers in one tick.
func (c Config) BallStep() float64 {
	return c.BallSpeed * c.TickPeriod.Seconds()
}

// Validate reports every setting that makes the arena geometry impossible.
func (c Config) Validate() error {
	var errs []error
	if c.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("tick_period must be positive, got %v", c.TickPeriod))
	}
	if c.AskTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ask_timeout must be positive, got %v", c.AskTimeout))
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight))
	}
	if c.PaddleSize <= 0 || c.PaddleThickness <= 0 || c.BallSize <= 0 {
		errs = append(errs, errors.New("paddle and ball dimensions must be positive"))
	}
	if c.PaddleSize > c.CanvasHeight {
		errs = append(errs, fmt.Errorf("paddle_size %d exceeds canvas height %d", c.PaddleSize, c.CanvasHeight))
	}
	if c.BallSize > c.PaddleSize {
		errs = append(errs, fmt.Errorf("ball_size %d exceeds paddle_size %d", c.BallSize, c.PaddleSize))
	}
	if 2*c.PaddleThickness+2*c.BallSize >= c.CanvasWidth {
		errs = append(errs, fmt.Errorf("canvas width %d leaves no room between paddles", c.CanvasWidth))
	}
	if c.PaddleSpeed < 0 || c.BallSpeed < 0 {
		errs = append(errs, errors.New("speeds must not be negative"))
	}
	// The ball must not cross a whole critical zone in one tick.
	if c.TickPeriod > 0 && c.BallStep() > float64(c.PaddleThickness) {
		errs = append(errs, fmt.Errorf("ball step %.1f per tick exceeds paddle_thickness %d", c.BallStep(), c.PaddleThickness))
	}
	if c.BroadcastEvery <= 0 {
		errs = append(errs, fmt.Errorf("broadcast_every must be positive, got %d", c.BroadcastEvery))
	}
	if c.Codec != CodecJSON && c.Codec != CodecMsgpack {
		errs = append(errs, fmt.Errorf("unknown codec %q", c.Codec))
	}
	for _, keys := range []KeyBindings{c.Player1Keys, c.Player2Keys} {
		if keys.Up == "" || keys.Down == "" || keys.Special == "" {
			errs = append(errs, fmt.Errorf("incomplete key bindings %+v", keys))
		}
	}
	return errors.Join(errs...)
}

// LoadConfigFile decodes a TOML file on top of the defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadEnv loads envFile (when it exists) into the process environment, reads
// the TOML file named by PONGDUEL_CONFIG if set, applies the remaining
// PONGDUEL_* overrides and validates the result.
func LoadEnv(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	if path := os.Getenv(EnvConfigPath); path != "" {
		loaded, err := LoadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.SpectatorAddr = addr
	}
	if codec := os.Getenv(EnvCodec); codec != "" {
		cfg.Codec = strings.ToLower(codec)
	}
	if tick := os.Getenv(EnvTick); tick != "" {
		period, err := time.ParseDuration(tick)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTick, err)
		}
		cfg.TickPeriod = period
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
