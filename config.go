package scrollfx

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning defaults. Smoothing is a design knob: lower values give a heavier,
// more cinematic lag.
const (
	DefaultSmoothing        = 0.12
	DefaultMobileBreakpoint = 900.0
	DefaultConvergeEpsilon  = 0.5
	DefaultResizeDebounce   = 150 * time.Millisecond

	DefaultBackgroundFactor = 0.05
	DefaultCardFactor       = 0.04
	DefaultCardBuffer       = 200.0

	DefaultTiltMaxDeg       = 5.0
	DefaultTiltScale        = 1.02
	DefaultTiltPerspective  = 1000.0
	DefaultTiltTrackSeconds = 0.1
	DefaultTiltLeaveSeconds = 0.5

	DefaultJupiterOpacity    = 0.6
	DefaultSaturnMaxOpacity  = 0.45
	DefaultJupiterMaxRotate  = 45.0
	DefaultSaturnMaxRotate   = -30.0
	DefaultSaturnFadeRate    = 4.0
	DefaultSaturnScaleBase   = 0.9
	DefaultSaturnScalePulse  = 0.3
	DefaultBackToTopShowAt   = 400.0
	DefaultScrollSpyOffset   = 150.0
	DefaultJupiterSpinPerSec = 6.0
	DefaultSaturnSpinPerSec  = -4.0
)

// Config holds every tunable of the engine. The zero value is not usable;
// start from DefaultConfig or LoadConfig.
type Config struct {
	// Smoothing is the per-frame interpolation weight toward the raw scroll
	// target. Must lie in (0, 1).
	Smoothing float64 `yaml:"smoothing"`
	// MobileBreakpoint suspends the engine below this viewport width.
	MobileBreakpoint float64 `yaml:"mobile_breakpoint"`
	// ConvergeEpsilon is the distance in pixels under which the loop idles.
	ConvergeEpsilon float64 `yaml:"converge_epsilon"`
	// ResizeDebounce coalesces resize bursts.
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
	// LoopMode selects converge (idle when settled) or free_run.
	LoopMode LoopMode `yaml:"loop_mode"`

	Background BackgroundConfig `yaml:"background"`
	Cards      CardConfig       `yaml:"cards"`
	Tilt       TiltConfig       `yaml:"tilt"`
	Bodies     BodyConfig       `yaml:"bodies"`
	Widgets    WidgetConfig     `yaml:"widgets"`

	ReducedMotion ReducedMotionConfig `yaml:"reduced_motion"`
}

// BackgroundConfig tunes the background parallax layer.
type BackgroundConfig struct {
	Factor float64 `yaml:"factor"`
	// MaxFraction clamps the offset to this fraction of the viewport height.
	// Zero disables the clamp.
	MaxFraction float64 `yaml:"max_fraction"`
}

// CardConfig tunes per-card vertical parallax.
type CardConfig struct {
	Factor float64 `yaml:"factor"`
	Buffer float64 `yaml:"buffer"`
}

// TiltConfig tunes the pointer-driven card tilt.
type TiltConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MaxDeg       float64 `yaml:"max_deg"`
	Scale        float64 `yaml:"scale"`
	Perspective  float64 `yaml:"perspective"`
	TrackSeconds float32 `yaml:"track_seconds"`
	LeaveSeconds float32 `yaml:"leave_seconds"`
}

// BodyConfig tunes the two decorative bodies.
type BodyConfig struct {
	JupiterOpacity    float64 `yaml:"jupiter_opacity"`
	SaturnMaxOpacity  float64 `yaml:"saturn_max_opacity"`
	JupiterMaxRotate  float64 `yaml:"jupiter_max_rotate"`
	SaturnMaxRotate   float64 `yaml:"saturn_max_rotate"`
	SaturnFadeRate    float64 `yaml:"saturn_fade_rate"`
	SaturnScaleBase   float64 `yaml:"saturn_scale_base"`
	SaturnScalePulse  float64 `yaml:"saturn_scale_pulse"`
	JupiterSpinPerSec float64 `yaml:"jupiter_spin_per_sec"`
	SaturnSpinPerSec  float64 `yaml:"saturn_spin_per_sec"`
}

// WidgetConfig tunes the ancillary widgets.
type WidgetConfig struct {
	BackToTopShowAt float64 `yaml:"back_to_top_show_at"`
	ScrollSpyOffset float64 `yaml:"scroll_spy_offset"`
}

// ReducedMotionConfig controls what survives a reduced-motion preference.
// Bodies are always hidden.
type ReducedMotionConfig struct {
	KeepParallax bool `yaml:"keep_parallax"`
}

// DefaultConfig returns the tuning used on the production page.
func DefaultConfig() Config {
	return Config{
		Smoothing:        DefaultSmoothing,
		MobileBreakpoint: DefaultMobileBreakpoint,
		ConvergeEpsilon:  DefaultConvergeEpsilon,
		ResizeDebounce:   DefaultResizeDebounce,
		LoopMode:         LoopConverge,
		Background: BackgroundConfig{
			Factor: DefaultBackgroundFactor,
		},
		Cards: CardConfig{
			Factor: DefaultCardFactor,
			Buffer: DefaultCardBuffer,
		},
		Tilt: TiltConfig{
			Enabled:      true,
			MaxDeg:       DefaultTiltMaxDeg,
			Scale:        DefaultTiltScale,
			Perspective:  DefaultTiltPerspective,
			TrackSeconds: DefaultTiltTrackSeconds,
			LeaveSeconds: DefaultTiltLeaveSeconds,
		},
		Bodies: BodyConfig{
			JupiterOpacity:    DefaultJupiterOpacity,
			SaturnMaxOpacity:  DefaultSaturnMaxOpacity,
			JupiterMaxRotate:  DefaultJupiterMaxRotate,
			SaturnMaxRotate:   DefaultSaturnMaxRotate,
			SaturnFadeRate:    DefaultSaturnFadeRate,
			SaturnScaleBase:   DefaultSaturnScaleBase,
			SaturnScalePulse:  DefaultSaturnScalePulse,
			JupiterSpinPerSec: DefaultJupiterSpinPerSec,
			SaturnSpinPerSec:  DefaultSaturnSpinPerSec,
		},
		Widgets: WidgetConfig{
			BackToTopShowAt: DefaultBackToTopShowAt,
			ScrollSpyOffset: DefaultScrollSpyOffset,
		},
		ReducedMotion: ReducedMotionConfig{KeepParallax: true},
	}
}

// LoadConfig parses YAML on top of DefaultConfig, so a file only needs the
// keys it overrides. The result is validated.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range knob.
func (c Config) Validate() error {
	if c.Smoothing <= 0 || c.Smoothing >= 1 {
		return fmt.Errorf("config: smoothing %v must be in (0, 1)", c.Smoothing)
	}
	if c.MobileBreakpoint < 0 {
		return fmt.Errorf("config: mobile_breakpoint %v must not be negative", c.MobileBreakpoint)
	}
	if c.ConvergeEpsilon <= 0 {
		return fmt.Errorf("config: converge_epsilon %v must be positive", c.ConvergeEpsilon)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("config: resize_debounce %v must not be negative", c.ResizeDebounce)
	}
	switch c.LoopMode {
	case LoopConverge, LoopFreeRun:
	default:
		return fmt.Errorf("config: unknown loop_mode %q", c.LoopMode)
	}
	if c.Background.MaxFraction < 0 {
		return fmt.Errorf("config: background.max_fraction %v must not be negative", c.Background.MaxFraction)
	}
	if c.Cards.Buffer < 0 {
		return fmt.Errorf("config: cards.buffer %v must not be negative", c.Cards.Buffer)
	}
	if c.Tilt.TrackSeconds < 0 || c.Tilt.LeaveSeconds < 0 {
		return fmt.Errorf("config: tilt durations must not be negative")
	}
	return nil
}
