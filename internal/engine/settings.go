// Package engine defines the parameter surface the inference core
// consumes. The core itself (model execution, memory bank, decoding)
// lives outside this module; Settings is the contract handed to it.
package engine

// Settings is the flat, resolved parameter set for one inference run.
// Fields gated by toggles are already projected: when UseLongTerm is
// false the long-term bank fields are zero, and when it is true the
// short-term MaxMemFrames is zero. Size fields use 0 for "no limit".
type Settings struct {
	Weights     string
	ModelName   string
	ModelParams map[string]any

	Amp     bool
	FlipAug bool

	MaxInternalSize int // 0 disables the internal resolution cap

	SaveAll     bool
	UseAllMasks bool

	MemEvery     int
	UseLongTerm  bool
	MaxMemFrames int // short-term capacity; 0 when long-term memory is on

	CountUsage           bool
	LongTermMaxMemFrames int
	LongTermMinMemFrames int
	NumPrototypes        int
	MaxNumTokens         int
	BufferTokens         int

	TopK           int
	StaggerUpdates int
	ChunkSize      int // objects per chunk; 0 processes all objects at once

	SaveScores bool
	SaveAux    bool
	Visualize  bool
}
