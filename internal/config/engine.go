package config

import (
	"github.com/matvid/matrun/internal/engine"
)

// ToEngineSettings projects the run configuration onto the parameter
// set the inference core consumes. The long-term block only carries
// over when use_long_term is set; otherwise the short-term
// max_mem_frames applies and the long-term fields stay zero.
func (r *Run) ToEngineSettings() *engine.Settings {
	settings := &engine.Settings{
		Weights:     r.Weights,
		ModelName:   r.Model.Name,
		ModelParams: r.Model.Params,

		Amp:     r.Amp,
		FlipAug: r.FlipAug,

		MaxInternalSize: boundOrZero(r.MaxInternalSize),

		SaveAll:     r.SaveAll,
		UseAllMasks: r.UseAllMasks,

		MemEvery:    r.MemEvery,
		UseLongTerm: r.UseLongTerm,

		TopK:           r.TopK,
		StaggerUpdates: r.StaggerUpdates,
		ChunkSize:      boundOrZero(r.ChunkSize),

		SaveScores: r.SaveScores,
		SaveAux:    r.SaveAux,
		Visualize:  r.Visualize,
	}

	if r.UseLongTerm {
		settings.CountUsage = r.LongTerm.CountUsage
		settings.LongTermMaxMemFrames = r.LongTerm.MaxMemFrames
		settings.LongTermMinMemFrames = r.LongTerm.MinMemFrames
		settings.NumPrototypes = r.LongTerm.NumPrototypes
		settings.MaxNumTokens = r.LongTerm.MaxNumTokens
		settings.BufferTokens = r.LongTerm.BufferTokens
	} else {
		settings.MaxMemFrames = r.MaxMemFrames
	}

	return settings
}

func boundOrZero(l Limit) int {
	if n, ok := l.Value(); ok {
		return n
	}
	return 0
}
