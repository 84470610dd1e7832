package diag

import (
	"github.com/segmentio/ksuid"
	"github.com/tliron/commonlog"
)

// RunID tags a single compiler invocation for debug-log correlation,
// mirroring how the teacher's indirect ksuid dependency correlates
// LSP requests; here it ties together the one-line-per-pass progress
// messages a --debug run emits (SPEC_FULL §7).
type RunID string

func NewRunID() RunID { return RunID(ksuid.New().String()) }

// Logger is the debug-gated progress logger used by
// internal/dataflow.Pipeline.Run, ported from the teacher's
// OptimizationPipeline.Run one-line-per-pass pattern but routed through
// commonlog instead of bare fmt.Printf.
type Logger struct {
	run     RunID
	debug   bool
	backend commonlog.Logger
}

// NewLogger configures commonlog at debug verbosity when debug is set,
// following the teacher's cmd/kanso-lsp/main.go commonlog.Configure
// call, and returns a logger scoped to the dataflow pipeline.
func NewLogger(run RunID, debug bool) *Logger {
	level := 0
	if debug {
		level = 1
	}
	commonlog.Configure(level, nil)
	return &Logger{run: run, debug: debug, backend: commonlog.GetLogger("ucc.pipeline")}
}

// Pass logs a single optimisation pass's start, only when debug mode
// is enabled; silent otherwise, per SPEC_FULL §7's "default runs stay
// silent" requirement.
func (l *Logger) Pass(funcName, passName string) {
	if !l.debug {
		return
	}
	l.backend.Infof("[%s] %s: running %s", l.run, funcName, passName)
}

// Trace logs a single executed instruction from internal/interp's call
// loop, the --debug counterpart to Pass for cmd/uccode (SPEC_FULL §6's
// "interpreter debug" flag); silent unless debug mode is enabled.
func (l *Logger) Trace(funcName, instr string) {
	if !l.debug {
		return
	}
	l.backend.Infof("[%s] %s: %s", l.run, funcName, instr)
}
