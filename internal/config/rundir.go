package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnresolvedPlaceholder indicates a template placeholder outside
	// the supported set.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrBadTimeFormat indicates an unsupported directive in a
	// ${now:...} format string.
	ErrBadTimeFormat = errors.New("unsupported time format directive")
)

// defaultNowFormat is used for a bare ${now} placeholder.
const defaultNowFormat = "%Y-%m-%d_%H-%M-%S"

var placeholderPattern = regexp.MustCompile(`\$\{([a-z_]+)(?::([^}]*))?\}`)

// RunContext carries the per-run values substituted into directory
// templates. A fresh one is minted per resolution so repeated runs of
// the same experiment land in distinct directories.
type RunContext struct {
	ExpID   string
	Dataset string
	RunID   string
	Now     time.Time
}

// NewRunContext builds a substitution context for this run with a fresh
// run id and the current time.
func (r *Run) NewRunContext() RunContext {
	return RunContext{
		ExpID:   r.ExpID,
		Dataset: r.Dataset,
		RunID:   uuid.NewString(),
		Now:     time.Now(),
	}
}

// ResolvedDirs holds the expanded run directories.
type ResolvedDirs struct {
	RunDir       string
	OutputSubdir string
}

// ResolveDirs expands the directory templates for this run. An explicit
// output_dir replaces the derived run directory without affecting the
// output subdirectory.
func (r *Run) ResolveDirs(ctx RunContext) (ResolvedDirs, error) {
	runDir := r.OutputDir
	if runDir == "" {
		expanded, err := expandPlaceholders(r.Dirs.Dir, ctx)
		if err != nil {
			return ResolvedDirs{}, fmt.Errorf("failed to resolve run dir: %w", err)
		}
		runDir = expanded
	}

	subdir, err := expandPlaceholders(r.Dirs.OutputSubdir, ctx)
	if err != nil {
		return ResolvedDirs{}, fmt.Errorf("failed to resolve output subdir: %w", err)
	}

	return ResolvedDirs{
		RunDir:       runDir,
		OutputSubdir: subdir,
	}, nil
}

// expandPlaceholders substitutes ${exp_id}, ${dataset}, ${run_id} and
// ${now:FMT} in a template. Unknown placeholders are an error rather
// than passing through silently.
func expandPlaceholders(template string, ctx RunContext) (string, error) {
	var expandErr error

	expanded := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		name, arg := groups[1], groups[2]

		switch name {
		case "exp_id":
			return ctx.ExpID
		case "dataset":
			return ctx.Dataset
		case "run_id":
			return ctx.RunID
		case "now":
			if arg == "" {
				arg = defaultNowFormat
			}
			layout, err := strftimeLayout(arg)
			if err != nil {
				if expandErr == nil {
					expandErr = err
				}
				return match
			}
			return ctx.Now.Format(layout)
		default:
			if expandErr == nil {
				expandErr = fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, match)
			}
			return match
		}
	})

	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}

// strftimeDirectives maps the strftime subset used by run documents to
// Go reference-time layout fragments.
var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'j': "002",
	'%': "%",
}

// strftimeLayout translates a strftime format string into a Go time
// layout. The source documents use strftime; translating here keeps
// them loadable unchanged.
func strftimeLayout(format string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteByte(format[i])
			continue
		}
		i++
		if i >= len(format) {
			return "", fmt.Errorf("%w: trailing %%", ErrBadTimeFormat)
		}
		fragment, ok := strftimeDirectives[format[i]]
		if !ok {
			return "", fmt.Errorf("%w: %%%c", ErrBadTimeFormat, format[i])
		}
		b.WriteString(fragment)
	}
	return b.String(), nil
}
