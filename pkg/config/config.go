// Package config loads viewer settings from defaults and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/sudorandom/city-globe/pkg/sources"
)

type Window struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

type Globe struct {
	Radius        float64 `json:"radius" mapstructure:"radius"`
	Texture       string  `json:"texture" mapstructure:"texture"`
	Coastlines    string  `json:"coastlines" mapstructure:"coastlines"`
	RotationSpeed float64 `json:"rotationSpeed" mapstructure:"rotationSpeed"`
}

type Camera struct {
	Fov         float64 `json:"fov" mapstructure:"fov"`
	Distance    float64 `json:"distance" mapstructure:"distance"`
	MinDistance float64 `json:"minDistance" mapstructure:"minDistance"`
	MaxDistance float64 `json:"maxDistance" mapstructure:"maxDistance"`
}

type Assets struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	CacheDir string `json:"cacheDir" mapstructure:"cacheDir"`
}

type Capture struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

type Config struct {
	LogLevel string  `json:"logLevel" mapstructure:"logLevel"`
	TPS      int     `json:"tps" mapstructure:"tps"`
	Window   Window  `json:"window" mapstructure:"window"`
	Globe    Globe   `json:"globe" mapstructure:"globe"`
	Camera   Camera  `json:"camera" mapstructure:"camera"`
	Assets   Assets  `json:"assets" mapstructure:"assets"`
	Capture  Capture `json:"capture" mapstructure:"capture"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("tps", 60)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "City Globe")

	v.SetDefault("globe.radius", 5.0)
	v.SetDefault("globe.texture", sources.GlobeTexture)
	v.SetDefault("globe.coastlines", "")
	v.SetDefault("globe.rotationSpeed", 0.001)

	v.SetDefault("camera.fov", 75.0)
	v.SetDefault("camera.distance", 10.0)
	v.SetDefault("camera.minDistance", 6.0)
	v.SetDefault("camera.maxDistance", 30.0)

	v.SetDefault("assets.dir", ".")
	v.SetDefault("assets.cacheDir", "data/cache")

	v.SetDefault("capture.dir", "")
}

// Load returns the defaults overlaid with the file at path, if path is set. The file
// type follows its extension (json, yaml, toml). CITYGLOBE_* environment variables
// override both.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("cityglobe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Level maps LogLevel to a zerolog level, defaulting to info.
func (c Config) Level() zerolog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
