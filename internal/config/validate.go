package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyWeights indicates a missing checkpoint path
	ErrEmptyWeights = errors.New("empty weights path")

	// ErrInvalidMemEvery indicates an invalid memory update stride
	ErrInvalidMemEvery = errors.New("invalid mem_every")

	// ErrInvalidMemFrames indicates an invalid short-term memory capacity
	ErrInvalidMemFrames = errors.New("invalid max_mem_frames")

	// ErrInvalidLongTermFrames indicates invalid long-term frame bounds
	ErrInvalidLongTermFrames = errors.New("invalid long-term frame bounds")

	// ErrInvalidPrototypes indicates an invalid prototype count
	ErrInvalidPrototypes = errors.New("invalid num_prototypes")

	// ErrInvalidTokenBudget indicates invalid long-term token bounds
	ErrInvalidTokenBudget = errors.New("invalid token budget")

	// ErrInvalidTopK indicates an invalid memory-read selection width
	ErrInvalidTopK = errors.New("invalid top_k")

	// ErrInvalidStagger indicates an invalid update staggering interval
	ErrInvalidStagger = errors.New("invalid stagger_updates")
)

// Validate checks that the run configuration is consistent. The
// long-term block is validated even when use_long_term is off, so a bad
// preset is caught before anyone flips the toggle.
func Validate(run *Run) error {
	var errs []error

	if strings.TrimSpace(run.Weights) == "" {
		errs = append(errs, fmt.Errorf("%w: weights is required", ErrEmptyWeights))
	}

	if err := validateMemory(run); err != nil {
		errs = append(errs, err)
	}

	if err := validateLongTerm(&run.LongTerm); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateMemory(run *Run) error {
	var errs []error

	if run.MemEvery < 1 {
		errs = append(errs, fmt.Errorf("%w: mem_every must be at least 1, got %d", ErrInvalidMemEvery, run.MemEvery))
	}

	if run.MaxMemFrames < 1 {
		errs = append(errs, fmt.Errorf("%w: max_mem_frames must be at least 1, got %d", ErrInvalidMemFrames, run.MaxMemFrames))
	}

	if run.TopK < 1 {
		errs = append(errs, fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidTopK, run.TopK))
	}

	if run.StaggerUpdates < 1 {
		errs = append(errs, fmt.Errorf("%w: stagger_updates must be at least 1, got %d", ErrInvalidStagger, run.StaggerUpdates))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLongTerm(cfg *LongTermConfig) error {
	var errs []error

	if cfg.MinMemFrames < 1 {
		errs = append(errs, fmt.Errorf("%w: min_mem_frames must be at least 1, got %d", ErrInvalidLongTermFrames, cfg.MinMemFrames))
	}

	if cfg.MinMemFrames > cfg.MaxMemFrames {
		errs = append(errs, fmt.Errorf("%w: min_mem_frames (%d) must not exceed max_mem_frames (%d)", ErrInvalidLongTermFrames, cfg.MinMemFrames, cfg.MaxMemFrames))
	}

	if cfg.NumPrototypes < 1 {
		errs = append(errs, fmt.Errorf("%w: num_prototypes must be positive, got %d", ErrInvalidPrototypes, cfg.NumPrototypes))
	}

	if cfg.MaxNumTokens < 1 {
		errs = append(errs, fmt.Errorf("%w: max_num_tokens must be positive, got %d", ErrInvalidTokenBudget, cfg.MaxNumTokens))
	}

	if cfg.BufferTokens < 0 {
		errs = append(errs, fmt.Errorf("%w: buffer_tokens cannot be negative, got %d", ErrInvalidTokenBudget, cfg.BufferTokens))
	}

	if cfg.MaxNumTokens > 0 && cfg.BufferTokens >= cfg.MaxNumTokens {
		errs = append(errs, fmt.Errorf("%w: buffer_tokens (%d) must be less than max_num_tokens (%d)", ErrInvalidTokenBudget, cfg.BufferTokens, cfg.MaxNumTokens))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
