// Package fontresolver picks a concrete font file (or a PDF built-in
// sentinel) for a requested typeface and attribute set, and measures glyph
// advances against it.
//
// Matching is nearest-neighbor on (stretch, weight, italic), with a cutoff
// distance of 900 and ties broken by first discovery.
package fontresolver

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"escprender/internal/backend"
)

// DefaultTypefaceTable is the default ESC/P typeface-id -> family-name
// table.
var DefaultTypefaceTable = map[int]string{
	0:  "Roman",
	1:  "Sans serif",
	2:  "Courier",
	3:  "Prestige",
	4:  "Script",
	5:  "OCR-B",
	6:  "OCR-A",
	7:  "Orator",
	8:  "Orator-S",
	9:  "Script C",
	10: "Roman T",
	11: "Sans serif H",
	30: "SV Busaba",
	31: "SV Jittra",
}

// TypefaceSource describes where to find a family's font files on disk, and
// its fixed/proportional-pitch variant file names, matching
// config.TypefaceConfig without importing the config package (keeps this
// package's public surface free of a config dependency).
type TypefaceSource struct {
	Path             string
	FixedName        string
	ProportionalName string
	// Stretch and Weight position this family in the nearest-neighbor
	// table: 100..500 stretch, 100..900 weight.
	Stretch int
	Weight  int
	Italic  bool
}

// Resolver is the default FontResolver: a configured family table plus a
// cache of parsed sfnt.Font instances for advance-width measurement.
type Resolver struct {
	families []namedSource

	mu    sync.Mutex
	cache map[string]*sfnt.Font
}

type namedSource struct {
	name string
	src  TypefaceSource
}

// New builds a Resolver from the configured typeface-family map
// (typeface-family -> (path, fixed_name, proportional_name)).
// Order of iteration is not guaranteed by Go maps,
// so callers that care about first-discovery tie-breaking should pass an
// ordered slice via NewOrdered.
func New(families map[string]TypefaceSource) *Resolver {
	r := &Resolver{cache: map[string]*sfnt.Font{}}
	for name, src := range families {
		r.families = append(r.families, namedSource{name: name, src: src})
	}
	return r
}

// NewOrdered builds a Resolver that considers families in the given order,
// so equal-distance matches resolve to the first one discovered. Names
// missing from families are skipped.
func NewOrdered(names []string, families map[string]TypefaceSource) *Resolver {
	r := &Resolver{cache: map[string]*sfnt.Font{}}
	for _, name := range names {
		src, ok := families[name]
		if !ok {
			continue
		}
		r.families = append(r.families, namedSource{name: name, src: src})
	}
	return r
}

const cutoffDistance = 900

// Resolve finds the nearest-neighbor font for familySubstring + attributes,
// falling back to a PDF built-in (Times/Courier) when no configured family
// matches within the cutoff.
func (r *Resolver) Resolve(familySubstring string, condensed, italic, bold bool, searchPath string) (backend.ResolvedFont, error) {
	wantWeight := 400
	if bold {
		wantWeight = 700
	}
	wantStretch := 100
	if condensed {
		wantStretch = 100 // condensed already narrows stretch in pitch, not family selection
	}

	best := -1
	bestDist := cutoffDistance + 1
	for i, f := range r.families {
		if !containsFold(f.name, familySubstring) {
			continue
		}
		if f.src.Italic != italic {
			continue
		}
		dist := abs(f.src.Stretch-wantStretch) + abs(f.src.Weight-wantWeight)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}

	if best < 0 || bestDist > cutoffDistance {
		builtin := "Times-Roman"
		if bold {
			builtin = "Times-Bold"
		}
		if familySubstring == "Courier" {
			builtin = "Courier"
		}
		return backend.ResolvedFont{BuiltIn: builtin, FamilyName: builtin}, nil
	}

	src := r.families[best].src
	name := src.ProportionalName
	if condensed && src.FixedName != "" {
		name = src.FixedName
	}
	if name == "" {
		name = r.families[best].name
	}

	return backend.ResolvedFont{Path: src.Path, FamilyName: name}, nil
}

// AdvanceWidth returns the measured glyph advance, in inches, for ch under
// font, at pointSize. For a resolved scalable font file, it parses (and
// caches) the sfnt table and queries the unhinted advance;
// for a built-in sentinel it uses Courier's fixed 0.6em or an approximate
// 0.5em average width, matching the backend's built-in metrics.
func (r *Resolver) AdvanceWidth(f backend.ResolvedFont, ch rune, pointSize float64) float64 {
	if f.Path == "" {
		if f.BuiltIn == "Courier" {
			return 0.6 * pointSize / 72.0
		}
		return 0.5 * pointSize / 72.0
	}

	sf, err := r.parsed(f.Path)
	if err != nil || sf == nil {
		return 0.5 * pointSize / 72.0
	}

	var buf sfnt.Buffer
	gi, err := sf.GlyphIndex(&buf, ch)
	if err != nil || gi == 0 {
		return 0.5 * pointSize / 72.0
	}

	ppem := fixed.Int26_6(pointSize * 64)
	adv, err := sf.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
	if err != nil {
		return 0.5 * pointSize / 72.0
	}

	return float64(adv) / 64.0 / 72.0
}

func (r *Resolver) parsed(path string) (*sfnt.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sf, ok := r.cache[path]; ok {
		return sf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontresolver: reading %s: %w", path, err)
	}

	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontresolver: parsing %s: %w", path, err)
	}

	r.cache[path] = sf
	return sf, nil
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return indexFold(s, substr) >= 0
}

func indexFold(s, substr string) int {
	ls, lsub := len(s), len(substr)
	if lsub > ls {
		return -1
	}
	for i := 0; i+lsub <= ls; i++ {
		if equalFold(s[i:i+lsub], substr) {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
