package interp

import (
	"errors"
	"fmt"
	"io"

	"escprender/internal/backend"
	"escprender/internal/codepage"
	"escprender/internal/logging"
	"escprender/internal/metrics"
	"escprender/internal/ramchars"
	"escprender/internal/raster"
	"escprender/internal/token"
)

// TokenizeError wraps a *token.UnexpectedSequenceError with the "core"
// vocabulary: a tokenizer error is always fatal.
type TokenizeError struct {
	Offset int
	Detail string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("interp: tokenize error at offset %d: %s", e.Offset, e.Detail)
}

// Renderer selects the dot-drawing primitive used by the rasterizer.
type Renderer = raster.Renderer

// Interpreter dispatches tokens to handlers, mutating State and calling
// Page. Dispatch is total: every token the tokenizer can produce has an
// entry in the dispatch table.
type Interpreter struct {
	State *State

	Registry *codepage.Registry
	RAM      *ramchars.Store

	Page              backend.Page
	Fonts             backend.FontResolver
	Barcodes          backend.BarcodeRenderer
	Log               *logging.JobLogger
	Metrics           *metrics.Registry
	RendererKind      Renderer
	CondensedFallback bool

	dispatch map[string]func(*Interpreter, token.Token) error

	pageOpen            bool
	warnedCodepageSlots map[int]bool
	warnedCommands      map[string]bool

	// inTIFFRaster mirrors the tokenizer's own sub-machine flag so shared
	// tokens (carriage_return) can special-case their TIFF-mode meaning.
	inTIFFRaster bool
}

// New builds an Interpreter ready to run a job. ram is the job's
// user-defined (RAM) character store.
func New(state *State, reg *codepage.Registry, ram *ramchars.Store, page backend.Page, fonts backend.FontResolver, barcodes backend.BarcodeRenderer, log *logging.JobLogger, m *metrics.Registry, renderer Renderer) *Interpreter {
	it := &Interpreter{
		State:               state,
		Registry:            reg,
		RAM:                 ram,
		Page:                page,
		Fonts:               fonts,
		Barcodes:            barcodes,
		Log:                 log,
		Metrics:             m,
		RendererKind:        renderer,
		warnedCodepageSlots: map[int]bool{},
		warnedCommands:      map[string]bool{},
	}
	it.dispatch = it.buildDispatch()
	return it
}

// Run tokenizes and interprets data end-to-end: a job is processed
// start-to-finish, synchronously, with no suspension points.
func (it *Interpreter) Run(data []byte) error {
	tok := token.New(data, it)

	it.Page.BeginPage(it.State.PageWidthIn*raster.PointsPerInch, it.State.PageHeightIn*raster.PointsPerInch)
	it.pageOpen = true

	for {
		t, err := tok.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if use, ok := err.(*token.UnexpectedSequenceError); ok {
				if it.Metrics != nil {
					it.Metrics.TokenizeErrors.Inc()
				}
				if it.Log != nil {
					it.Log.LogTokenizeError(use.Offset, use)
				}
				return &TokenizeError{Offset: use.Offset, Detail: use.Detail}
			}
			return err
		}

		if it.Metrics != nil {
			it.Metrics.CommandsProcessed.Inc()
			it.Metrics.BytesProcessed.Add(float64(len(t.Params) + 1))
		}

		handler, ok := it.dispatch[t.Command]
		if !ok {
			it.logUnsupportedOnce(t.Command)
			continue
		}
		if err := handler(it, t); err != nil {
			if be, ok := err.(*backendError); ok {
				if it.Log != nil {
					it.Log.LogBackendError(t.Command, be.err)
				}
				return be.err
			}
			// Handler-level errors (bad parameter) log and continue from
			// the next token.
			if it.Log != nil {
				it.Log.LogParamOutOfRange(t.Command, err.Error())
			}
		}
	}

	if it.pageOpen {
		it.Page.EndPage()
	}
	if err := it.Page.Finalize(); err != nil {
		if it.Log != nil {
			it.Log.LogBackendError("finalize", err)
		}
		return fmt.Errorf("interp: backend finalize: %w", err)
	}
	if it.RAM != nil {
		if err := it.RAM.Save(); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) logUnsupportedOnce(command string) {
	if it.Metrics != nil {
		it.Metrics.UnsupportedCommands.WithLabelValues(command).Inc()
	}
	if it.warnedCommands[command] {
		return
	}
	it.warnedCommands[command] = true
	if it.Log != nil {
		it.Log.LogUnsupportedCommand(command)
	}
}

// backendError marks an error as originating from a Page/backend call, so
// Run can distinguish it from an ordinary recoverable handler error.
type backendError struct{ err error }

func (b *backendError) Error() string { return b.err.Error() }

func wrapBackendErr(err error) error {
	if err == nil {
		return nil
	}
	return &backendError{err: fmt.Errorf("backend: %w", err)}
}

// currentSettingsFingerprint builds the ramchars.Settings value for the
// RAM-character volatility invariant.
func (it *Interpreter) currentSettingsFingerprint() ramchars.Settings {
	mode := 0
	if it.State.PrintMode == LQ {
		mode = 1
	}
	return ramchars.Settings{
		Mode:                mode,
		ProportionalSpacing: it.State.ProportionalSpacing,
		Scripting:           int(it.State.Scripting),
	}
}

// cancelMultipoint implements the shared "ESC P/M/g/p/!/@ cancels
// multipoint mode and resets HMI" rule.
func (it *Interpreter) cancelMultipoint() {
	it.State.MultipointMode = false
	it.State.CharacterWidthIn = 0
}

// syncRAMSettings propagates the live settings fingerprint to the RAM
// character store; any change invalidates previously defined glyphs. Called
// by every handler that touches print mode, proportional spacing, or
// scripting.
func (it *Interpreter) syncRAMSettings() {
	if it.RAM == nil {
		return
	}
	it.RAM.SetSettings(it.currentSettingsFingerprint())
	it.Registry.Register("user_defined", it.RAM.Table())
}
