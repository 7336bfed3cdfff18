package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the run schema:
// - Default() returns the documented default values
// - Default() passes validation
// - Validate() accepts valid configurations
// - Validate() rejects mem_every < 1
// - Validate() rejects max_mem_frames < 1
// - Validate() rejects min_mem_frames > max_mem_frames (long-term)
// - Validate() rejects non-positive num_prototypes
// - Validate() rejects buffer_tokens >= max_num_tokens
// - Validate() rejects top_k < 1 and stagger_updates < 1
// - Validate() rejects empty weights
// - Validate() checks the long-term block even when use_long_term is off
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsDocumentedValues(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)

	assert.Equal(t, "default", cfg.ExpID)
	assert.False(t, cfg.Amp)
	assert.Equal(t, "pretrained_models/matanyone.pth", cfg.Weights)
	assert.Empty(t, cfg.OutputDir)
	assert.False(t, cfg.FlipAug)

	assert.False(t, cfg.MaxInternalSize.Bounded())
	assert.Equal(t, -1, cfg.MaxInternalSize.Int())

	assert.True(t, cfg.SaveAll)
	assert.False(t, cfg.UseAllMasks)
	assert.False(t, cfg.UseLongTerm)
	assert.Equal(t, 5, cfg.MemEvery)
	assert.Equal(t, 5, cfg.MaxMemFrames)

	assert.True(t, cfg.LongTerm.CountUsage)
	assert.Equal(t, 10, cfg.LongTerm.MaxMemFrames)
	assert.Equal(t, 5, cfg.LongTerm.MinMemFrames)
	assert.Equal(t, 128, cfg.LongTerm.NumPrototypes)
	assert.Equal(t, 10000, cfg.LongTerm.MaxNumTokens)
	assert.Equal(t, 2000, cfg.LongTerm.BufferTokens)

	assert.Equal(t, 30, cfg.TopK)
	assert.Equal(t, 5, cfg.StaggerUpdates)
	assert.False(t, cfg.ChunkSize.Bounded())

	assert.False(t, cfg.SaveScores)
	assert.False(t, cfg.SaveAux)
	assert.False(t, cfg.Visualize)

	assert.NotEmpty(t, cfg.Dirs.Dir)
	assert.NotEmpty(t, cfg.Dirs.OutputSubdir)

	assert.NoError(t, Validate(cfg))
}

func TestValidate_AcceptsValidConfiguration(t *testing.T) {
	cfg := Default()
	cfg.UseLongTerm = true
	cfg.MaxInternalSize = LimitOf(480)
	cfg.ChunkSize = LimitOf(4)

	assert.NoError(t, Validate(cfg))
}

func TestValidate_RejectsZeroMemEvery(t *testing.T) {
	cfg := Default()
	cfg.MemEvery = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMemEvery)
}

func TestValidate_RejectsZeroMaxMemFrames(t *testing.T) {
	cfg := Default()
	cfg.MaxMemFrames = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMemFrames)
}

func TestValidate_RejectsMinAboveMaxLongTermFrames(t *testing.T) {
	cfg := Default()
	cfg.LongTerm.MinMemFrames = 20
	cfg.LongTerm.MaxMemFrames = 10

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLongTermFrames)
}

func TestValidate_ChecksLongTermBlockEvenWhenDisabled(t *testing.T) {
	// A bad preset must be caught before anyone flips use_long_term on.
	cfg := Default()
	cfg.UseLongTerm = false
	cfg.LongTerm.NumPrototypes = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPrototypes)
}

func TestValidate_RejectsBufferTokensAtTokenBudget(t *testing.T) {
	cfg := Default()
	cfg.LongTerm.MaxNumTokens = 1000
	cfg.LongTerm.BufferTokens = 1000

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTokenBudget)
}

func TestValidate_RejectsNegativeBufferTokens(t *testing.T) {
	cfg := Default()
	cfg.LongTerm.BufferTokens = -1

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTokenBudget)
}

func TestValidate_RejectsZeroTopK(t *testing.T) {
	cfg := Default()
	cfg.TopK = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestValidate_RejectsZeroStaggerUpdates(t *testing.T) {
	cfg := Default()
	cfg.StaggerUpdates = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStagger)
}

func TestValidate_RejectsEmptyWeights(t *testing.T) {
	cfg := Default()
	cfg.Weights = "   "

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyWeights)
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	cfg := Default()
	cfg.Weights = ""
	cfg.MemEvery = 0
	cfg.TopK = -5
	cfg.LongTerm.MinMemFrames = 50

	err := Validate(cfg)
	require.Error(t, err)

	errMsg := err.Error()
	assert.Contains(t, errMsg, "weights")
	assert.Contains(t, errMsg, "mem_every")
	assert.Contains(t, errMsg, "top_k")
	assert.Contains(t, errMsg, "min_mem_frames")
}
