// Package escprender is the public entry point of the core: it wires the
// tokenizer, interpreter, codepage registry, RAM character store, font
// resolver and barcode renderer together behind a single NewJob/Job.Run
// call.
//
// Everything under internal/ is a collaborating component; this package is
// the only one an external caller (the CLI, or any other host) needs to
// import.
package escprender

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"escprender/internal/backend"
	"escprender/internal/barcode"
	"escprender/internal/codepage"
	"escprender/internal/config"
	"escprender/internal/fontresolver"
	"escprender/internal/interp"
	"escprender/internal/logging"
	"escprender/internal/metrics"
	"escprender/internal/ramchars"
	"escprender/internal/raster"
)

// pageSizeAliases maps the named aliases the page_size configuration key
// accepts to (width,height) in points.
var pageSizeAliases = map[string][2]float64{
	"letter": {612, 792},
	"legal":  {612, 1008},
	"a4":     {595.28, 841.89},
	"a3":     {841.89, 1190.55},
}

const mmPerInch = 25.4

// Job is one ESC/P-to-page-document conversion run. A fresh Job (and
// therefore a fresh Interpreter and State) is built per input; no data is
// shared across jobs.
type Job struct {
	interp *Interpreter
	log    *logging.JobLogger
	ram    *ramchars.Store
	reg    *codepage.Registry
	mreg   *metrics.Registry
}

// Interpreter is re-exported so callers that need to reach into advanced
// state (tests, diagnostics) don't need to import internal/interp directly
// through an indirect path.
type Interpreter = interp.Interpreter

// Options lets a caller override the default backends NewJob otherwise
// builds from cfg. Any left nil falls back to the built-in implementation.
type Options struct {
	Page     backend.Page
	Fonts    backend.FontResolver
	Barcodes backend.BarcodeRenderer
	Logger   *zap.Logger
	// PrometheusRegisterer, when nil, gets a private prometheus.NewRegistry()
	// so repeated jobs in one process never collide on metric registration.
	PrometheusRegisterer prometheus.Registerer
}

// NewJob builds a Job from cfg and the given page backend (a Recording
// backend, a real PDF writer, or anything else implementing backend.Page).
// jobID is used only to scope log lines; pass "" to have one generated.
func NewJob(cfg *config.Config, jobID string, opts Options) (*Job, error) {
	if jobID == "" {
		jobID = uuid.NewString()
	}

	widthPt, heightPt, err := resolvePageSize(cfg.PageSize)
	if err != nil {
		return nil, err
	}
	widthIn := widthPt / raster.PointsPerInch
	heightIn := heightPt / raster.PointsPerInch

	printable := interp.Margins{
		Top:    heightIn - cfg.PrintableAreaMarginsMM.Top/mmPerInch,
		Bottom: cfg.PrintableAreaMarginsMM.Bottom / mmPerInch,
		Left:   cfg.PrintableAreaMarginsMM.Left / mmPerInch,
		Right:  widthIn - cfg.PrintableAreaMarginsMM.Right/mmPerInch,
	}

	state := interp.NewState(widthIn, heightIn, printable, cfg.Pins, cfg.SingleSheets, cfg.AutomaticLinefeed)

	reg := codepage.NewRegistry()

	ramDBPath := cfg.UserDefinedDBPath
	if ramDBPath == "" {
		ramDBPath = "escprender_userchars.json"
	}
	ram, err := ramchars.NewStore(ramDBPath)
	if err != nil {
		return nil, fmt.Errorf("escprender: opening user-defined character database: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		built, err := logging.New(&cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("escprender: building logger: %w", err)
		}
		logger = built
	}
	jobLog := logging.NewJobLogger(logger, jobID)

	registerer := opts.PrometheusRegisterer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	mreg := metrics.NewRegistry(registerer)

	page := opts.Page
	if page == nil {
		page = &backend.Recording{}
	}

	fonts := opts.Fonts
	if fonts == nil {
		sources := make(map[string]fontresolver.TypefaceSource, len(cfg.Typefaces))
		for name, tf := range cfg.Typefaces {
			sources[name] = fontresolver.TypefaceSource{
				Path:             tf.Path,
				FixedName:        tf.FixedName,
				ProportionalName: tf.ProportionalName,
				Stretch:          100,
				Weight:           400,
			}
		}
		fonts = fontresolver.New(sources)
	}

	barcodes := opts.Barcodes
	if barcodes == nil {
		barcodes = barcode.New()
	}

	renderer := interp.Renderer(raster.RendererDots)
	if cfg.Renderer == "rectangles" {
		renderer = raster.RendererRectangles
	}

	it := interp.New(state, reg, ram, page, fonts, barcodes, jobLog, mreg, renderer)
	if cfg.CondensedFallback != nil {
		it.CondensedFallback = *cfg.CondensedFallback
	}

	return &Job{interp: it, log: jobLog, ram: ram, reg: reg, mreg: mreg}, nil
}

// Run tokenizes and interprets data end-to-end, finalizing the page backend
// and persisting the user-defined character database on success. The
// metrics JobDuration histogram observes the wall-clock
// cost of this call.
func (j *Job) Run(data []byte) error {
	timer := prometheus.NewTimer(j.mreg.JobDuration)
	defer timer.ObserveDuration()

	return j.interp.Run(data)
}

// State exposes the live printer state for callers that want to inspect it
// after a run (tests, diagnostics).
func (j *Job) State() *interp.State {
	return j.interp.State
}

func resolvePageSize(cfg config.PageSizeConfig) (widthPt, heightPt float64, err error) {
	if cfg.WidthPt > 0 && cfg.HeightPt > 0 {
		return cfg.WidthPt, cfg.HeightPt, nil
	}
	alias := cfg.Alias
	if alias == "" {
		alias = "letter"
	}
	size, ok := pageSizeAliases[lower(alias)]
	if !ok {
		return 0, 0, fmt.Errorf("escprender: unknown page_size alias %q", cfg.Alias)
	}
	return size[0], size[1], nil
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
