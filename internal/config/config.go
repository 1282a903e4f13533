// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Camera      CameraConfig      `yaml:"camera"`
	Grid        GridConfig        `yaml:"grid"`
	Lighting    LightingConfig    `yaml:"lighting"`
	Assets      AssetsConfig      `yaml:"assets"`
	Interaction InteractionConfig `yaml:"interaction"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// CameraConfig holds the orbit camera's starting state.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Damping  float32    `yaml:"damping"`
}

// GridConfig holds the floor grid and snapping settings.
type GridConfig struct {
	Visible     bool       `yaml:"visible"`
	Size        float32    `yaml:"size"`
	Divisions   int        `yaml:"divisions"`
	CenterColor [3]float32 `yaml:"center_color"`
	GridColor   [3]float32 `yaml:"grid_color"`
	Snap        bool       `yaml:"snap"`
}

// LightingConfig holds light intensities.
type LightingConfig struct {
	Ambient      float32    `yaml:"ambient"`
	Main         float32    `yaml:"main"`
	MainPosition [3]float32 `yaml:"main_position"`
}

// AssetsConfig holds model and layout locations.
type AssetsConfig struct {
	ModelsDir   string `yaml:"models_dir"`
	LayoutFile  string `yaml:"layout_file"` // Optional YAML placement file
	WatchLayout bool   `yaml:"watch_layout"`
}

// InteractionConfig holds input and frame loop settings.
type InteractionConfig struct {
	DevMode        bool          `yaml:"dev_mode"`
	Debounce       time.Duration `yaml:"debounce"`
	MaxFrameErrors int           `yaml:"max_frame_errors"`
	ToastDuration  time.Duration `yaml:"toast_duration"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // console or json, for the log file
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Camera: CameraConfig{
			Position: [3]float32{-20, 10, 20},
			Target:   [3]float32{0, 0, 0},
			FOV:      60,
			Near:     0.1,
			Far:      1000,
			Damping:  0.05,
		},
		Grid: GridConfig{
			Visible:     true,
			Size:        20,
			Divisions:   20,
			CenterColor: [3]float32{0.27, 0.27, 0.27},
			GridColor:   [3]float32{0.53, 0.53, 0.53},
			Snap:        true,
		},
		Lighting: LightingConfig{
			Ambient:      0.5,
			Main:         0.8,
			MainPosition: [3]float32{10, 10, 10},
		},
		Assets: AssetsConfig{
			ModelsDir:   "models",
			LayoutFile:  "",
			WatchLayout: true,
		},
		Interaction: InteractionConfig{
			DevMode:        false,
			Debounce:       50 * time.Millisecond,
			MaxFrameErrors: 5,
			ToastDuration:  3 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}
