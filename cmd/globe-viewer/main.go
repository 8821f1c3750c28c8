package main

import (
	"errors"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/sudorandom/city-globe/pkg/assets"
	"github.com/sudorandom/city-globe/pkg/config"
	"github.com/sudorandom/city-globe/pkg/globe"
	"github.com/sudorandom/city-globe/pkg/render"
	"github.com/sudorandom/city-globe/pkg/sources"
)

const (
	textureWidth  = 2048
	textureHeight = 1024
)

type CLI struct {
	Config     string `help:"Config file (json, yaml or toml)." type:"path"`
	Width      int    `help:"Initial window width."`
	Height     int    `help:"Initial window height."`
	TPS        int    `name:"tps" help:"Ticks per second."`
	LogLevel   string `help:"trace, debug, info, warn or error."`
	CaptureDir string `help:"Directory F12 frame captures are written to." type:"path"`
	Texture    string `help:"Equirectangular world map wrapped around the globe."`
	Coastlines string `help:"GeoJSON land polygons drawn onto the globe texture." type:"path"`
	CacheDir   string `help:"Directory for the downloaded asset cache." type:"path"`
}

// apply overrides file and default settings with any flags that were given.
func (c CLI) apply(cfg *config.Config) {
	if c.Width > 0 {
		cfg.Window.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Window.Height = c.Height
	}
	if c.TPS > 0 {
		cfg.TPS = c.TPS
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.CaptureDir != "" {
		cfg.Capture.Dir = c.CaptureDir
	}
	if c.Texture != "" {
		cfg.Globe.Texture = c.Texture
	}
	if c.Coastlines != "" {
		cfg.Globe.Coastlines = c.Coastlines
	}
	if c.CacheDir != "" {
		cfg.Assets.CacheDir = c.CacheDir
	}
}

func newLogger(level zerolog.Level) zerolog.Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

func controllerOptions(cfg config.Config) globe.Options {
	opts := globe.DefaultOptions()
	opts.Width = float64(cfg.Window.Width)
	opts.Height = float64(cfg.Window.Height)
	opts.GlobeRadius = cfg.Globe.Radius
	opts.RotationSpeed = cfg.Globe.RotationSpeed
	opts.FovY = cfg.Camera.Fov
	opts.CameraDistance = cfg.Camera.Distance
	opts.MinDistance = cfg.Camera.MinDistance
	opts.MaxDistance = cfg.Camera.MaxDistance
	opts.TPS = cfg.TPS
	return opts
}

func cityImages(cities []sources.City) []string {
	var refs []string
	for _, c := range cities {
		refs = append(refs, c.Images...)
	}
	return refs
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("globe-viewer"),
		kong.Description("Interactive 3D globe of cities with photo popups."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		bootLog := newLogger(zerolog.InfoLevel)
		bootLog.Fatal().Err(err).Msg("loading config")
	}
	cli.apply(&cfg)
	log := newLogger(cfg.Level())

	var cache *assets.Cache
	if cfg.Assets.CacheDir != "" {
		cache, err = assets.OpenCache(cfg.Assets.CacheDir)
		if err != nil {
			log.Warn().Err(err).Msg("asset cache unavailable, falling back to memory")
			cache, err = assets.OpenMemoryCache()
			if err != nil {
				log.Fatal().Err(err).Msg("opening asset cache")
			}
		}
		if keys, err := cache.Keys(); err != nil {
			log.Warn().Err(err).Msg("listing asset cache")
		} else {
			log.Debug().Str("dir", cfg.Assets.CacheDir).Int("entries", len(keys)).Msg("asset cache ready")
		}
		defer func() {
			if err := cache.Close(); err != nil {
				log.Error().Err(err).Msg("closing asset cache")
			}
		}()
	}
	loader := assets.NewLoader(cfg.Assets.Dir, cache, log.With().Str("component", "assets").Logger())

	host := render.NewHost(cfg.Window.Width, cfg.Window.Height, loader, log.With().Str("component", "render").Logger())
	host.CaptureDir = cfg.Capture.Dir

	ctrl := globe.NewController(controllerOptions(cfg), host, log.With().Str("component", "globe").Logger())
	if err := ctrl.AddCities(sources.Cities); err != nil {
		if errors.Is(err, globe.ErrDuplicateCity) {
			log.Fatal().Err(err).Msg("city table is invalid")
		}
		log.Fatal().Err(err).Msg("registering cities")
	}
	host.Attach(ctrl)

	base, err := loader.Load(cfg.Globe.Texture)
	if err != nil {
		log.Warn().Err(err).Msg("globe texture missing, drawing plain sea")
		base = nil
	}
	var coast *render.Coastlines
	if cfg.Globe.Coastlines != "" {
		coast, err = render.LoadCoastlines(cfg.Globe.Coastlines)
		if err != nil {
			log.Warn().Err(err).Msg("coastlines unavailable")
		}
	}
	host.SetTexture(render.BakeTexture(base, coast, textureWidth, textureHeight))

	if missing := loader.Preload(cityImages(sources.Cities)); missing > 0 {
		log.Warn().Int("missing", missing).Msg("some city images will show placeholders")
	}

	log.Info().Int("cities", ctrl.Registry().Len()).Int("tps", cfg.TPS).Msg("starting globe viewer")

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(host); err != nil {
		log.Fatal().Err(err).Msg("game loop exited")
	}
}
