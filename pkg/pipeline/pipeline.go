// Package pipeline turns decoders into artifacts.
//
// A build routes one decoder's job into a voxel grid and renders the
// requested formats from it:
//
//   - schem: gzip-compressed Sponge schematic
//   - nbt: the same schematic, uncompressed
//   - json, cbor: the build [Report]
//   - dot, svg: the lane plan diagram
//
// Artifacts and reports are cached under a hash of the decoder's job, so
// rebuilding an unchanged decoder is a cache read. CLI and server share
// this package.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	d, _ := decoders.RVC().Lookup("jr")
//	result, err := runner.Build(ctx, d, pipeline.Options{Formats: []string{"schem"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	schem := result.Artifacts["schem"]
package pipeline

import (
	"io"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitgen/pkg/cache"
	"github.com/matzehuels/circuitgen/pkg/errors"
	"github.com/matzehuels/circuitgen/pkg/voxel"
)

// Format constants for output formats.
const (
	FormatSchem = "schem"
	FormatNBT   = "nbt"
	FormatJSON  = "json"
	FormatCBOR  = "cbor"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
)

// Formats lists every supported format in a stable order.
var Formats = []string{FormatSchem, FormatNBT, FormatJSON, FormatCBOR, FormatDOT, FormatSVG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSchem: true,
	FormatNBT:   true,
	FormatJSON:  true,
	FormatCBOR:  true,
	FormatDOT:   true,
	FormatSVG:   true,
}

// ContentTypes maps formats to their HTTP content type.
var ContentTypes = map[string]string{
	FormatSchem: "application/octet-stream",
	FormatNBT:   "application/octet-stream",
	FormatJSON:  "application/json",
	FormatCBOR:  "application/cbor",
	FormatDOT:   "text/vnd.graphviz",
	FormatSVG:   "image/svg+xml",
}

// DefaultTTL is how long artifacts stay cached when Options.TTL is zero.
const DefaultTTL = 7 * 24 * time.Hour

// Options configures a build.
type Options struct {
	// Formats to render. Defaults to schem.
	Formats []string `json:"formats,omitempty"`

	// Offset is the paste anchor written into schematics.
	Offset [3]int `json:"offset,omitempty"`

	// Constants adds const and level sources to plan diagrams.
	Constants bool `json:"constants,omitempty"`

	// Workers bounds concurrent builds in BuildAll. Defaults to GOMAXPROCS.
	Workers int `json:"workers,omitempty"`

	// NoCache skips cache reads; results are still written.
	NoCache bool `json:"no_cache,omitempty"`

	// TTL of cached entries. Defaults to DefaultTTL.
	TTL time.Duration `json:"ttl,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults fills unset fields. Duplicate formats are dropped.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSchem}
	}
	o.Formats = dedupe(o.Formats)
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the options.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl must not be negative")
	}
	return nil
}

// OffsetPos returns Offset as a position.
func (o *Options) OffsetPos() voxel.Pos {
	return voxel.P(o.Offset[0], o.Offset[1], o.Offset[2])
}

// ArtifactKeyOpts returns cache key options for one rendered format. Only
// the options that change the format's bytes are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSchem, FormatNBT:
		k.Offset = o.Offset
	case FormatDOT, FormatSVG:
		k.Constants = o.Constants
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
