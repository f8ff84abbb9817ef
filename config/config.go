package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default configuration values
const (
	// Server
	DefaultPort      = 3000
	DefaultStaticDir = "./public"
	WebSocketPath    = "/ws"
	StatusPath       = "/status"

	// Grid: square board, coordinates in [0, MapSize)
	DefaultMapSize = 20

	// Scheduler: the loop fires every SchedulerTick and moves each player
	// whose own interval has elapsed. Keep intervals multiples of the tick.
	DefaultSchedulerTick = 50 * time.Millisecond
	DefaultBaseInterval  = 200 * time.Millisecond

	// Skills
	DefaultFastInterval    = 100 * time.Millisecond // speedUp
	DefaultSlowInterval    = 400 * time.Millisecond // slowEnemy
	DefaultSpeedUpDuration = time.Second
	DefaultSlowDuration    = 60 * time.Second
	DefaultReduceChance    = 0.8
	DefaultReduceMax       = 3 // reduceEnemy cuts 0..ReduceMax segments

	// Connection limits
	MaxPlayers = 2
	// DefaultIPCooldown of zero disables the per-IP reconnect cooldown
	DefaultIPCooldown = 0
)

// Environment variable names
const (
	EnvPort            = "SNAKE_PORT"
	EnvStaticDir       = "SNAKE_STATIC_DIR"
	EnvMapSize         = "SNAKE_MAP_SIZE"
	EnvSchedulerTick   = "SNAKE_SCHEDULER_TICK"
	EnvBaseInterval    = "SNAKE_BASE_INTERVAL"
	EnvFastInterval    = "SNAKE_FAST_INTERVAL"
	EnvSlowInterval    = "SNAKE_SLOW_INTERVAL"
	EnvSpeedUpDuration = "SNAKE_SPEEDUP_DURATION"
	EnvSlowDuration    = "SNAKE_SLOW_DURATION"
	EnvReduceChance    = "SNAKE_REDUCE_CHANCE"
	EnvIPCooldown      = "SNAKE_IP_COOLDOWN"
)

// Player colors in join order
var PlayerColors = []string{"limegreen", "deepskyblue"}

// Settings holds everything the server reads at startup.
type Settings struct {
	Port      int
	StaticDir string

	MapSize         int
	SchedulerTick   time.Duration
	BaseInterval    time.Duration
	FastInterval    time.Duration
	SlowInterval    time.Duration
	SpeedUpDuration time.Duration
	SlowDuration    time.Duration
	ReduceChance    float64
	ReduceMax       int

	IPCooldown time.Duration
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Port:            DefaultPort,
		StaticDir:       DefaultStaticDir,
		MapSize:         DefaultMapSize,
		SchedulerTick:   DefaultSchedulerTick,
		BaseInterval:    DefaultBaseInterval,
		FastInterval:    DefaultFastInterval,
		SlowInterval:    DefaultSlowInterval,
		SpeedUpDuration: DefaultSpeedUpDuration,
		SlowDuration:    DefaultSlowDuration,
		ReduceChance:    DefaultReduceChance,
		ReduceMax:       DefaultReduceMax,
		IPCooldown:      DefaultIPCooldown,
	}
}

// Load reads envFile (if it exists) into the process environment and then
// applies environment overrides on top of Defaults.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds Settings from a lookup function. Unset keys keep defaults.
func FromEnv(getenv func(string) string) (Settings, error) {
	s := Defaults()

	var err error
	if s.Port, err = intVar(getenv, EnvPort, s.Port); err != nil {
		return Settings{}, err
	}
	if v := getenv(EnvStaticDir); v != "" {
		s.StaticDir = v
	}
	if s.MapSize, err = intVar(getenv, EnvMapSize, s.MapSize); err != nil {
		return Settings{}, err
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvSchedulerTick, &s.SchedulerTick},
		{EnvBaseInterval, &s.BaseInterval},
		{EnvFastInterval, &s.FastInterval},
		{EnvSlowInterval, &s.SlowInterval},
		{EnvSpeedUpDuration, &s.SpeedUpDuration},
		{EnvSlowDuration, &s.SlowDuration},
		{EnvIPCooldown, &s.IPCooldown},
	}
	for _, d := range durations {
		if *d.dst, err = durationVar(getenv, d.key, *d.dst); err != nil {
			return Settings{}, err
		}
	}

	if v := getenv(EnvReduceChance); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvReduceChance, err)
		}
		s.ReduceChance = p
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the game loop cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.Port <= 0 || s.Port > 65535:
		return fmt.Errorf("port %d out of range", s.Port)
	case s.MapSize < 2:
		return fmt.Errorf("map size %d too small", s.MapSize)
	case s.SchedulerTick <= 0:
		return fmt.Errorf("scheduler tick must be positive")
	case s.BaseInterval < s.SchedulerTick || s.FastInterval < s.SchedulerTick || s.SlowInterval < s.SchedulerTick:
		return fmt.Errorf("move intervals must be at least the scheduler tick (%s)", s.SchedulerTick)
	case s.ReduceChance < 0 || s.ReduceChance > 1:
		return fmt.Errorf("reduce chance %v not in [0,1]", s.ReduceChance)
	case s.ReduceMax < 0:
		return fmt.Errorf("reduce max must not be negative")
	case s.IPCooldown < 0:
		return fmt.Errorf("ip cooldown must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (s Settings) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// durationVar accepts Go duration strings ("250ms") or bare milliseconds ("250").
func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
