package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for run-directory resolution:
// - ${exp_id}, ${dataset}, ${run_id} substitute context values
// - ${now:...} accepts the strftime subset; bare ${now} gets a default
// - Unknown placeholders and bad time directives are errors
// - output_dir replaces the derived run dir, subdir still resolves
// - NewRunContext mints distinct run ids

var fixedCtx = RunContext{
	ExpID:   "exp-a",
	Dataset: "vm800",
	RunID:   "b2f9",
	Now:     time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC),
}

func TestExpandPlaceholders_SubstitutesContextValues(t *testing.T) {
	got, err := expandPlaceholders("output/${exp_id}/${dataset}/${run_id}", fixedCtx)

	require.NoError(t, err)
	assert.Equal(t, "output/exp-a/vm800/b2f9", got)
}

func TestExpandPlaceholders_FormatsTimestamps(t *testing.T) {
	got, err := expandPlaceholders("${now:%Y-%m-%d_%H-%M-%S}", fixedCtx)

	require.NoError(t, err)
	assert.Equal(t, "2026-08-30_14-05-09", got)
}

func TestExpandPlaceholders_BareNowUsesDefaultFormat(t *testing.T) {
	got, err := expandPlaceholders("${now}", fixedCtx)

	require.NoError(t, err)
	assert.Equal(t, "2026-08-30_14-05-09", got)
}

func TestExpandPlaceholders_RejectsUnknownPlaceholder(t *testing.T) {
	_, err := expandPlaceholders("output/${job_num}", fixedCtx)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedPlaceholder)
}

func TestExpandPlaceholders_RejectsUnknownTimeDirective(t *testing.T) {
	_, err := expandPlaceholders("${now:%Q}", fixedCtx)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrBadTimeFormat)
}

func TestExpandPlaceholders_LeavesPlainStringsAlone(t *testing.T) {
	got, err := expandPlaceholders("output/plain/dir", fixedCtx)

	require.NoError(t, err)
	assert.Equal(t, "output/plain/dir", got)
}

func TestStrftimeLayout_TranslatesSubset(t *testing.T) {
	layout, err := strftimeLayout("%Y-%m-%d_%H-%M-%S")
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02_15-04-05", layout)

	layout, err = strftimeLayout("day%j%%")
	require.NoError(t, err)
	assert.Equal(t, "day002%", layout)
}

func TestStrftimeLayout_RejectsTrailingPercent(t *testing.T) {
	_, err := strftimeLayout("%Y%")

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrBadTimeFormat)
}

func TestResolveDirs_ExpandsTemplates(t *testing.T) {
	run := Default()
	run.ExpID = "exp-a"
	run.Dataset = "vm800"

	dirs, err := run.ResolveDirs(fixedCtx)

	require.NoError(t, err)
	assert.Equal(t, "output/exp-a/vm800/2026-08-30_14-05-09", dirs.RunDir)
	assert.Equal(t, "2026-08-30_14-05-09-cfg", dirs.OutputSubdir)
}

func TestResolveDirs_OutputDirOverridesDerivedRunDir(t *testing.T) {
	run := Default()
	run.OutputDir = "/data/results/manual"

	dirs, err := run.ResolveDirs(fixedCtx)

	require.NoError(t, err)
	assert.Equal(t, "/data/results/manual", dirs.RunDir)
	assert.Equal(t, "2026-08-30_14-05-09-cfg", dirs.OutputSubdir)
}

func TestResolveDirs_ReportsBadTemplate(t *testing.T) {
	run := Default()
	run.Dirs.Dir = "output/${mystery}"

	_, err := run.ResolveDirs(fixedCtx)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedPlaceholder)
}

func TestNewRunContext_MintsDistinctRunIDs(t *testing.T) {
	run := Default()
	run.ExpID = "exp-a"
	run.Dataset = "vm800"

	first := run.NewRunContext()
	second := run.NewRunContext()

	assert.Equal(t, "exp-a", first.ExpID)
	assert.Equal(t, "vm800", first.Dataset)
	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.False(t, first.Now.IsZero())
}
