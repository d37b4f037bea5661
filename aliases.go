package spectrum

import (
	"io"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/declare"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/expect"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/hooks"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tree"
)

type (
	// Block is the remainder of a hook chain, passed to AroundEach and
	// AroundAll callbacks.
	Block = hooks.Block
	// Description identifies a node in a declared tree.
	Description = report.Description
	// Tree is the identity structure of a declared tree.
	Tree = report.Tree
	// Reporter receives run notifications.
	Reporter = report.Reporter
	// Recorder is an in-memory Reporter.
	Recorder = report.Recorder
	// Event is one recorded notification.
	Event = report.Event
	// Summary tallies the outcome of a run.
	Summary = report.Summary
	// Modifier configures a declaration block; see With.
	Modifier = blockconfig.Modifier
	// Expectation describes the error a spec must end with; see ItExpecting.
	Expectation = expect.Expectation

	// AssumptionError is the cause reported when a spec calls T.Skip.
	AssumptionError = report.AssumptionError
	// PanicError is the cause reported for a panicking spec or hook.
	PanicError = hooks.PanicError
	// TimeoutError is the cause reported for a spec exceeding its time limit.
	TimeoutError = hooks.TimeoutError
	// DeclarationError is the cause reported by the stand-in spec of a suite
	// whose declaration closure panicked.
	DeclarationError = declare.DeclarationError
)

// ErrBlockNotRun is reported when a hook returned without running the block
// it wraps.
var ErrBlockNotRun = hooks.ErrBlockNotRun

// ErrAlreadyRun is returned by a second call to Runner.Run.
var ErrAlreadyRun = tree.ErrAlreadyRun

// DeclarationErrorSpec names the stand-in spec of a suite whose declaration
// closure panicked.
const DeclarationErrorSpec = declare.ErrorSpecName

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return report.NewRecorder() }

// NewJSONReporter returns a Reporter writing one JSON event per line to w.
func NewJSONReporter(w io.Writer) Reporter { return report.NewJSONWriter(w) }

// NewConsoleReporter returns a Reporter writing a colored, indented event
// stream to w.
func NewConsoleReporter(w io.Writer) Reporter { return report.NewConsole(w) }
