package config

import (
	"github.com/matvid/matrun/internal/logging"
)

// Run is the resolved configuration for a single inference run.
// It is composed once at process start (see Loader) and not mutated
// afterwards; the engine receives a projection of it via
// ToEngineSettings.
type Run struct {
	ExpID   string `yaml:"exp_id" mapstructure:"exp_id"`
	Dataset string `yaml:"dataset" mapstructure:"dataset"`

	Amp       bool   `yaml:"amp" mapstructure:"amp"`               // mixed-precision compute
	Weights   string `yaml:"weights" mapstructure:"weights"`       // checkpoint path
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"` // overrides the derived run dir when set
	FlipAug   bool   `yaml:"flip_aug" mapstructure:"flip_aug"`     // horizontal-flip augmentation at inference

	MaxInternalSize Limit `yaml:"max_internal_size" mapstructure:"max_internal_size"` // cap on internal processing resolution

	SaveAll     bool `yaml:"save_all" mapstructure:"save_all"`
	UseAllMasks bool `yaml:"use_all_masks" mapstructure:"use_all_masks"`
	UseLongTerm bool `yaml:"use_long_term" mapstructure:"use_long_term"`

	MemEvery     int `yaml:"mem_every" mapstructure:"mem_every"`           // frame stride between memory updates
	MaxMemFrames int `yaml:"max_mem_frames" mapstructure:"max_mem_frames"` // short-term capacity; engine uses it only without long-term memory

	LongTerm LongTermConfig `yaml:"long_term" mapstructure:"long_term"`

	TopK           int   `yaml:"top_k" mapstructure:"top_k"`
	StaggerUpdates int   `yaml:"stagger_updates" mapstructure:"stagger_updates"`
	ChunkSize      Limit `yaml:"chunk_size" mapstructure:"chunk_size"` // object-parallelism batch width

	SaveScores bool `yaml:"save_scores" mapstructure:"save_scores"`
	SaveAux    bool `yaml:"save_aux" mapstructure:"save_aux"`
	Visualize  bool `yaml:"visualize" mapstructure:"visualize"`

	Dirs    DirsConfig     `yaml:"run" mapstructure:"run"`
	Model   ModelConfig    `yaml:"model" mapstructure:"model"`
	Logging logging.Config `yaml:"logging" mapstructure:"logging"`
}

// LongTermConfig bounds the long-term memory bank. The values are
// always loaded and round-tripped, but only reach the engine when
// use_long_term is set.
type LongTermConfig struct {
	CountUsage    bool `yaml:"count_usage" mapstructure:"count_usage"` // track usage statistics for eviction
	MaxMemFrames  int  `yaml:"max_mem_frames" mapstructure:"max_mem_frames"`
	MinMemFrames  int  `yaml:"min_mem_frames" mapstructure:"min_mem_frames"`
	NumPrototypes int  `yaml:"num_prototypes" mapstructure:"num_prototypes"`
	MaxNumTokens  int  `yaml:"max_num_tokens" mapstructure:"max_num_tokens"`
	BufferTokens  int  `yaml:"buffer_tokens" mapstructure:"buffer_tokens"`
}

// DirsConfig holds the run-directory templates. Placeholders
// (${exp_id}, ${dataset}, ${now:...}, ${run_id}) are expanded by
// ResolveDirs at load time.
type DirsConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	OutputSubdir string `yaml:"output_subdir" mapstructure:"output_subdir"`
}

// ModelConfig identifies the model sub-config merged into the run.
// Architecture parameters are opaque to this tool and pass through to
// the engine unchanged.
type ModelConfig struct {
	Name   string         `yaml:"name" mapstructure:"name"`
	Params map[string]any `yaml:",inline" mapstructure:",remain"`
}

// Default returns a run configuration with the standard defaults.
func Default() *Run {
	return &Run{
		ExpID:   "default",
		Dataset: "",

		Amp:       false,
		Weights:   "pretrained_models/matanyone.pth",
		OutputDir: "", // empty means derive from run.dir
		FlipAug:   false,

		MaxInternalSize: Unbounded(),

		SaveAll:     true,
		UseAllMasks: false,
		UseLongTerm: false,

		MemEvery:     5,
		MaxMemFrames: 5,

		LongTerm: LongTermConfig{
			CountUsage:    true,
			MaxMemFrames:  10,
			MinMemFrames:  5,
			NumPrototypes: 128,
			MaxNumTokens:  10000,
			BufferTokens:  2000,
		},

		TopK:           30,
		StaggerUpdates: 5,
		ChunkSize:      Unbounded(),

		SaveScores: false,
		SaveAux:    false,
		Visualize:  false,

		Dirs: DirsConfig{
			Dir:          "output/${exp_id}/${dataset}/${now:%Y-%m-%d_%H-%M-%S}",
			OutputSubdir: "${now:%Y-%m-%d_%H-%M-%S}-cfg",
		},
		Model: ModelConfig{
			Name: "base",
		},
		Logging: logging.Default(),
	}
}
