// sprig-sandbox loads an asset catalog, spawns a crowd of bouncing sprites
// and renders them with the batch renderer. It is both a demo and a stress
// test: the default scene draws 10,000 quads per frame.
//
// Usage:
//
//	sprig-sandbox [-config sandbox.yaml] [-catalog assets.yaml] [-backend ebiten|headless]
//	              [-quads N] [-width W] [-height H] [-dump]
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"math/rand"
	"os"

	"github.com/Pallinder/go-randomdata"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/asset"
	"github.com/phanxgames/sprig/ecs"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/tanema/gween/ease"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "sprig-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func parseConfig(args []string) (Config, error) {
	flags := flag.NewFlagSet("sprig-sandbox", flag.ContinueOnError)
	configPath := flags.String("config", "", "YAML config file")
	catalog := flags.String("catalog", "", "asset catalog, relative to the asset directory")
	backend := flags.String("backend", "", "renderer backend: "+fmt.Sprint(sprig.Backends()))
	quads := flags.Int("quads", 0, "number of entities to spawn")
	width := flags.Int("width", 0, "window width in pixels")
	height := flags.Int("height", 0, "window height in pixels")
	dump := flags.Bool("dump", false, "print the asset registry and exit")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return cfg, err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.Catalog = *catalog
		case "backend":
			cfg.Backend = *backend
		case "quads":
			cfg.Quads = *quads
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "dump":
			cfg.Dump = *dump
		}
	})
	return cfg, cfg.validate()
}

func run(args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}
	level, _ := cfg.level()
	sprig.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	backend := sprig.MustBackend(cfg.Backend)
	renderer, err := sprig.NewRenderer(backend)
	if err != nil {
		return err
	}

	reg := asset.NewRegistry(asset.NewFSLoader(os.DirFS(cfg.AssetDir), backend))
	if err := loadAssets(reg, backend, &cfg); err != nil {
		return err
	}
	if cfg.Dump {
		reg.Dump(os.Stdout)
		return nil
	}

	rng := newRand(cfg.Seed)
	s := &sandbox{
		cfg:      cfg,
		renderer: renderer,
		scene:    ecs.NewScene(reg),
		camera:   sprig.NewOrthoCamera(float32(cfg.Width), float32(cfg.Height)),
		rng:      rng,
	}
	spawn(s, reg.SpriteNames())

	if eb, ok := backend.(*sprig.EbitenBackend); ok {
		return runWindow(s, eb)
	}
	runHeadless(s)
	return nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// loadAssets reads the configured catalog, if any, and falls back to the
// generated sheet when it yields no sprites.
func loadAssets(reg *asset.Registry, factory sprig.TextureFactory, cfg *Config) error {
	if cfg.Catalog != "" {
		var bar *progressbar.ProgressBar
		interactive := term.IsTerminal(int(os.Stderr.Fd()))
		err := reg.LoadFile(os.DirFS(cfg.AssetDir), cfg.Catalog, asset.WithProgress(func(done, total int) {
			if !interactive {
				return
			}
			if bar == nil {
				bar = progressbar.Default(int64(total), "loading textures")
			}
			_ = bar.Set(done)
		}))
		if bar != nil {
			_ = bar.Close()
		}
		var skipped interface{ Unwrap() []error }
		switch {
		case errors.As(err, &skipped):
			sprig.Logger().Warn("catalog loaded with errors", "skipped", len(skipped.Unwrap()))
		case err != nil:
			return err
		}
	}
	if cfg.Atlas != "" {
		data, err := fs.ReadFile(os.DirFS(cfg.AssetDir), cfg.Atlas)
		if err != nil {
			return errors.Wrap(err, "read atlas")
		}
		if err := reg.ImportAtlas(cfg.AtlasSheet, data); err != nil {
			sprig.Logger().Warn("atlas imported with errors", "atlas", cfg.Atlas, "err", err)
		}
	}
	if reg.NumSprites() == 0 {
		return addSheet(reg, factory)
	}
	return nil
}

// spawn fills the scene with cfg.Quads bouncing sprites that grow and fade
// in over their first second.
func spawn(s *sandbox, sprites []string) {
	randomdata.CustomRand(s.rng)
	world := s.scene.World()
	halfW, halfH := float32(s.cfg.Width)/2, float32(s.cfg.Height)/2
	for i := 0; i < s.cfg.Quads; i++ {
		size := 12 + s.rng.Float32()*36
		e := s.scene.Spawn(randomdata.SillyName(), ecs.TransformData{
			Position: mgl32.Vec3{
				(s.rng.Float32()*2 - 1) * halfW,
				(s.rng.Float32()*2 - 1) * halfH,
				0,
			},
			Rotation: s.rng.Float32() * 2 * math.Pi,
		})
		tint := sprig.Color{
			R: 0.5 + s.rng.Float32()*0.5,
			G: 0.5 + s.rng.Float32()*0.5,
			B: 0.5 + s.rng.Float32()*0.5,
			A: 1,
		}
		sr := ecs.NewSpriteRenderer(sprites[s.rng.Intn(len(sprites))])
		sr.Color = tint
		sr.Color.A = 0
		s.scene.AddSprite(e, sr)
		s.scene.AttachBehavior(e, &bouncer{
			dx:    (s.rng.Float32() - 0.5) * 240,
			dy:    (s.rng.Float32() - 0.5) * 240,
			spin:  (s.rng.Float32() - 0.5) * 4,
			halfW: halfW,
			halfH: halfH,
		})
		delay := s.rng.Float32() * 0.5
		s.scene.Tween(ecs.TweenSize(world, e, size, size, 0.5+delay, ease.OutBack))
		s.scene.Tween(ecs.TweenColor(world, e, tint, 0.5+delay, ease.Linear))
	}
	sprig.Logger().Info("scene populated", "entities", s.cfg.Quads, "sprites", len(sprites))
}
