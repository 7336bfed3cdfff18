package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Loader composes run configuration documents.
type Loader interface {
	// Load resolves the named run document against its defaults: list,
	// the environment, and any explicit key=value overrides.
	// Priority: defaults → composed layers → environment → overrides.
	Load(name string, overrides ...string) (*Run, error)
}

type loader struct {
	configDir string
}

// NewLoader creates a loader rooted at the given config directory.
// Sub-configs named by defaults: lists are resolved relative to it.
func NewLoader(configDir string) Loader {
	return &loader{
		configDir: configDir,
	}
}

// knownKeys enumerates every settable key of the run schema. Override
// and environment handling reject keys outside this set (model.* is
// open-ended because architecture parameters pass through).
var knownKeys = []string{
	"exp_id",
	"dataset",
	"amp",
	"weights",
	"output_dir",
	"flip_aug",
	"max_internal_size",
	"save_all",
	"use_all_masks",
	"use_long_term",
	"mem_every",
	"max_mem_frames",
	"long_term.count_usage",
	"long_term.max_mem_frames",
	"long_term.min_mem_frames",
	"long_term.num_prototypes",
	"long_term.max_num_tokens",
	"long_term.buffer_tokens",
	"top_k",
	"stagger_updates",
	"chunk_size",
	"save_scores",
	"save_aux",
	"visualize",
	"run.dir",
	"run.output_subdir",
	"model.name",
	"logging.level",
	"logging.format",
	"logging.with_rank",
}

func (l *loader) Load(name string, overrides ...string) (*Run, error) {
	raw, err := os.ReadFile(l.resolvePath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read run document: %w", err)
	}

	layers, self, err := parseRunDocument(raw)
	if err != nil {
		return nil, err
	}

	v := viper.New()

	// Enable environment variable overrides
	v.SetEnvPrefix("MATRUN")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., MATRUN_LONG_TERM_MAX_MEM_FRAMES)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range knownKeys {
		v.BindEnv(key)
	}

	setDefaults(v)

	// Merge the defaults: layers in listed order; later layers win.
	for _, layer := range layers {
		if layer.isSelf() {
			if err := v.MergeConfigMap(self); err != nil {
				return nil, fmt.Errorf("failed to merge run document: %w", err)
			}
			continue
		}
		sub, err := loadSubConfig(l.configDir, layer)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(layer.scope(sub)); err != nil {
			return nil, fmt.Errorf("failed to merge sub-config %s/%s: %w", layer.group, layer.name, err)
		}
	}

	// Explicit overrides outrank everything, including the environment.
	parsed, err := parseOverrides(overrides)
	if err != nil {
		return nil, err
	}
	for _, o := range parsed {
		v.Set(o.Key, o.Value)
	}

	run := &Run{}
	if err := v.Unmarshal(run, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		limitDecodeHook(),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run config: %w", err)
	}

	if err := Validate(run); err != nil {
		return nil, fmt.Errorf("invalid run configuration: %w", err)
	}

	return run, nil
}

// resolvePath locates the run document: absolute paths and paths with
// separators are taken as given, bare names resolve inside configDir.
func (l *loader) resolvePath(name string) string {
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(l.configDir, name)
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("exp_id", defaults.ExpID)
	v.SetDefault("dataset", defaults.Dataset)

	v.SetDefault("amp", defaults.Amp)
	v.SetDefault("weights", defaults.Weights)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("flip_aug", defaults.FlipAug)

	v.SetDefault("max_internal_size", defaults.MaxInternalSize.Int())

	v.SetDefault("save_all", defaults.SaveAll)
	v.SetDefault("use_all_masks", defaults.UseAllMasks)
	v.SetDefault("use_long_term", defaults.UseLongTerm)

	v.SetDefault("mem_every", defaults.MemEvery)
	v.SetDefault("max_mem_frames", defaults.MaxMemFrames)

	v.SetDefault("long_term.count_usage", defaults.LongTerm.CountUsage)
	v.SetDefault("long_term.max_mem_frames", defaults.LongTerm.MaxMemFrames)
	v.SetDefault("long_term.min_mem_frames", defaults.LongTerm.MinMemFrames)
	v.SetDefault("long_term.num_prototypes", defaults.LongTerm.NumPrototypes)
	v.SetDefault("long_term.max_num_tokens", defaults.LongTerm.MaxNumTokens)
	v.SetDefault("long_term.buffer_tokens", defaults.LongTerm.BufferTokens)

	v.SetDefault("top_k", defaults.TopK)
	v.SetDefault("stagger_updates", defaults.StaggerUpdates)
	v.SetDefault("chunk_size", defaults.ChunkSize.Int())

	v.SetDefault("save_scores", defaults.SaveScores)
	v.SetDefault("save_aux", defaults.SaveAux)
	v.SetDefault("visualize", defaults.Visualize)

	v.SetDefault("run.dir", defaults.Dirs.Dir)
	v.SetDefault("run.output_subdir", defaults.Dirs.OutputSubdir)

	v.SetDefault("model.name", defaults.Model.Name)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.with_rank", defaults.Logging.WithRank)
}

// LoadRun is a convenience function that creates a loader and loads the
// named run document from the given config directory.
func LoadRun(configDir, name string, overrides ...string) (*Run, error) {
	return NewLoader(configDir).Load(name, overrides...)
}
