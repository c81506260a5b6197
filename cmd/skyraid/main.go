package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/skyraid/skyraid/internal/config"
	"github.com/skyraid/skyraid/internal/core/event"
	"github.com/skyraid/skyraid/internal/data"
	"github.com/skyraid/skyraid/internal/engine"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/persist"
	"github.com/skyraid/skyraid/internal/scripting"
	"github.com/skyraid/skyraid/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              SkyRaid  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main run ───────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/skyraid.toml"
	if p := os.Getenv("SKYRAID_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Levels and scripts
	printSection("Levels")
	levels, err := data.LoadLevelTable(cfg.Levels.File)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	printStat("Levels", levels.Count())
	if _, err := levels.Get(cfg.Levels.Start); err != nil {
		return fmt.Errorf("levels.start: %w", err)
	}

	scripts, err := scripting.NewEngine(cfg.Levels.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	printOK("Lua level scripts loaded")
	fmt.Println()

	// 4. Optional result history
	var results *persist.ResultRepo
	if cfg.Database.Enabled {
		printSection("Database")
		dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.Open(dbCtx, cfg.Database, log)
		cancel()
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		results = persist.NewResultRepo(db)
		printOK("PostgreSQL connected, migrations applied")
		fmt.Println()
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printReady(fmt.Sprintf("Flying from level %d (seed %d)", cfg.Levels.Start, seed))
	fmt.Println()

	// 5. Level progression
	var played []persist.LevelResult
	for i := cfg.Levels.Start; i < levels.Count(); i++ {
		lc, err := levels.Get(i)
		if err != nil {
			return err
		}
		res, err := playLevel(ctx, cfg, lc, seed+int64(i), scripts, log)
		if err != nil {
			return fmt.Errorf("level %s: %w", lc.Name, err)
		}
		played = append(played, res)
		if res.Outcome != level.Completed.String() {
			break
		}
	}

	printSummary(played)

	if results != nil && len(played) > 0 {
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := results.Save(saveCtx, played...); err != nil {
			log.Error("save results", zap.Error(err))
		} else {
			printBests(saveCtx, results, played, log)
		}
	}
	return nil
}

// playLevel runs one level to completion, loss, MaxTicks or shutdown.
func playLevel(ctx context.Context, cfg *config.Config, lc level.Config, seed int64, scripts *scripting.Engine, log *zap.Logger) (persist.LevelResult, error) {
	sim, err := engine.New(engine.Options{
		Level:        lc,
		Seed:         seed,
		Tick:         cfg.Simulation.TickRate,
		Field:        world.Rect{W: cfg.Simulation.FieldWidth, H: cfg.Simulation.FieldHeight},
		PlayerHealth: cfg.Player.InitialHealth,
		RetryCeiling: cfg.Simulation.RetryCeiling,
		Scripts:      scripts,
		Log:          log,
	})
	if err != nil {
		return persist.LevelResult{}, err
	}

	event.Subscribe(sim.Bus(), func(e event.EnemyKilled) {
		log.Debug("enemy killed", zap.String("kind", e.Kind), zap.Int("score", e.Score))
	})
	event.Subscribe(sim.Bus(), func(e event.ItemCollected) {
		log.Debug("item collected", zap.String("effect", e.Effect), zap.Int("amount", e.Amount))
	})
	sim.OnPaused(func() { log.Info("paused", zap.String("level", lc.Name)) })
	sim.OnResumed(func() { log.Info("resumed", zap.String("level", lc.Name)) })

	levelCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	clk := engine.NewClock(sim)
	pilot := newAutopilot()
	clk.BeforeTick(func(s *engine.Simulation) {
		if m := cfg.Simulation.MaxTicks; m > 0 && s.Tick() >= m {
			cancel()
			return
		}
		pilot.steer(s)
	})

	// SIGUSR1 toggles pause.
	toggle := make(chan os.Signal, 1)
	signal.Notify(toggle, syscall.SIGUSR1)
	defer signal.Stop(toggle)
	go func() {
		for {
			select {
			case <-levelCtx.Done():
				return
			case <-toggle:
				clk.Submit(func(s *engine.Simulation) {
					if !s.Pause() {
						s.Resume()
					}
				})
			}
		}
	}()

	state, err := clk.Run(levelCtx)
	outcome := state.String()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return persist.LevelResult{}, err
		}
		outcome = "aborted"
	}

	lvl := sim.Level()
	digest := sim.Digest()
	return persist.LevelResult{
		Level:      lc.Name,
		Outcome:    outcome,
		Score:      lvl.Score,
		Kills:      lvl.KillCount,
		Coins:      lvl.CoinsCollected,
		Ticks:      sim.Tick(),
		Seed:       seed,
		Digest:     digest[:],
		FinishedAt: time.Now(),
	}, nil
}

func printSummary(run []persist.LevelResult) {
	p := message.NewPrinter(language.English)
	printSection("Results")
	total := 0
	for _, r := range run {
		p.Printf("  %-16s %-10s score %8d  kills %5d  coins %5d  ticks %7d\n",
			r.Level, r.Outcome, r.Score, r.Kills, r.Coins, r.Ticks)
		total += r.Score
	}
	p.Printf("  total score %d\n", total)
	fmt.Println()
}

func printBests(ctx context.Context, repo *persist.ResultRepo, run []persist.LevelResult, log *zap.Logger) {
	p := message.NewPrinter(language.English)
	for _, r := range run {
		best, err := repo.TopScore(ctx, r.Level, 1)
		if errors.Is(err, data.ErrIndexOutOfBounds) {
			continue
		}
		if err != nil {
			log.Warn("top score lookup", zap.String("level", r.Level), zap.Error(err))
			continue
		}
		p.Printf("  best on %s: %d\n", r.Level, best.Score)
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
