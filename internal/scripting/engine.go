package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skyraid/skyraid/internal/level"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrNoFunction is returned when a level names a Lua function that no
// loaded script defines.
var ErrNoFunction = errors.New("lua function not defined")

// Engine wraps a single gopher-lua VM holding the level scripts.
// Single-goroutine access only (the clock goroutine).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory just yields an engine with no functions.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	vm.SetGlobal("log_info", vm.NewFunction(e.luaLogInfo))

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load level scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Predicate binds the global Lua function name as a level predicate. The
// function receives a stats table and its result is read as a Lua boolean
// (nil and false are false). A runtime error is logged and reads as false.
func (e *Engine) Predicate(name string) (level.Predicate, error) {
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("predicate %q: %w", name, ErrNoFunction)
	}
	return func(s level.Stats) bool {
		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, e.statsTable(s)); err != nil {
			e.log.Error("lua predicate error", zap.String("fn", name), zap.Error(err))
			return false
		}
		result := e.vm.Get(-1)
		e.vm.Pop(1)
		return lua.LVAsBool(result)
	}, nil
}

func (e *Engine) statsTable(s level.Stats) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(s.Tick))
	t.RawSetString("score", lua.LNumber(s.Score))
	t.RawSetString("kills", lua.LNumber(s.Kills))
	t.RawSetString("coins", lua.LNumber(s.Coins))
	t.RawSetString("player_health", lua.LNumber(s.PlayerHealth))
	t.RawSetString("player_destroyed", lua.LBool(s.PlayerDestroyed))
	t.RawSetString("boss_defeated", lua.LBool(s.BossDefeated))
	if s.FuelEnabled {
		t.RawSetString("fuel", lua.LNumber(s.Fuel))
	}
	if s.TimerEnabled {
		t.RawSetString("timer_remaining", lua.LNumber(s.TimerRemaining))
	}
	return t
}

// log_info(msg) lets scripts write to the server log.
func (e *Engine) luaLogInfo(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
