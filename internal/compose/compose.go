// Package compose builds the complete schema document: a fixed SQL template
// wrapped around a structural schema file, with starter roles, classrooms
// and settings, and a closing NOTICE banner.
package compose

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/bonfie-erp/schemactl/internal/checksum"
	"github.com/bonfie-erp/schemactl/internal/extract"
	"github.com/bonfie-erp/schemactl/internal/files/filesystem"
	"github.com/bonfie-erp/schemactl/internal/logging"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

//go:embed templates/complete_schema.sql.tmpl
var documentTemplate string

var tmpl = template.Must(template.New("complete_schema").Parse(documentTemplate))

// Section headings of the composed document.
const (
	Part1Marker = "-- PART 1: 擴展和設定"
	Part2Marker = "-- PART 2: 完整表結構 (27個表)"
	Part3Marker = "-- PART 3: 初始資料"
	Part4Marker = "-- PART 4: 建立管理員帳號指引"
)

// Default administrator shown in the closing banner.
const (
	DefaultAdminEmail    = "jamy@bonfieart.com"
	DefaultAdminPassword = "Jamy1206"
)

// Admin is the account the closing banner tells the operator to create.
type Admin struct {
	Email    string
	Password string
}

// DefaultAdmin returns the built-in administrator.
func DefaultAdmin() Admin {
	return Admin{Email: DefaultAdminEmail, Password: DefaultAdminPassword}
}

// Options configure a composition.
type Options struct {
	SchemaPath string
	InitPath   string
	OutputPath string

	Markers extract.Markers
	Needles []string

	// SpliceBootstrap appends the fragment extracted from the init file to
	// PART 3. By default it is computed and reported but left out.
	SpliceBootstrap bool

	Admin Admin

	// Now returns the generation time. Defaults to time.Now.
	Now func() time.Time

	Logger schemactl.Logger
}

func (o *Options) applyDefaults() {
	if o.Markers == (extract.Markers{}) {
		o.Markers = extract.DefaultMarkers()
	}
	if o.Needles == nil {
		o.Needles = extract.DefaultNeedles
	}
	if o.Admin == (Admin{}) {
		o.Admin = DefaultAdmin()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Validate checks that all paths are set. Every missing path is reported.
func (o *Options) Validate() error {
	var errs []error
	if o.SchemaPath == "" {
		errs = append(errs, fmt.Errorf("schema path is required: %w", schemactl.ErrInvalidConfig))
	}
	if o.InitPath == "" {
		errs = append(errs, fmt.Errorf("init path is required: %w", schemactl.ErrInvalidConfig))
	}
	if o.OutputPath == "" {
		errs = append(errs, fmt.Errorf("output path is required: %w", schemactl.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// Document is a rendered complete schema.
type Document struct {
	Text      string
	Bootstrap extract.Result
	Strategy  extract.Strategy
	Spliced   bool
	Generated time.Time
}

type templateData struct {
	Date          string
	Schema        string
	Extracted     string
	Strategy      extract.Strategy
	AdminEmail    string
	AdminPassword string
}

// Render builds the document from schema and initialization script text. The schema is
// embedded verbatim; it is never parsed or expanded.
func Render(schema, initSQL string, opts Options) (Document, error) {
	opts.applyDefaults()
	if err := opts.Admin.Validate(); err != nil {
		return Document{}, fmt.Errorf("%v: %w", err, schemactl.ErrInvalidConfig)
	}

	bootstrap, strategy := extract.Bootstrap(initSQL, opts.Markers, opts.Needles)
	generated := opts.Now()

	data := templateData{
		Date:          generated.Format(schemactl.DateLayout),
		Schema:        schema,
		Strategy:      strategy,
		AdminEmail:    quoteLiteral(opts.Admin.Email),
		AdminPassword: quoteLiteral(opts.Admin.Password),
	}
	spliced := opts.SpliceBootstrap && bootstrap.Found
	if spliced {
		data.Extracted = strings.TrimRight(bootstrap.Text, "\n")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Document{}, fmt.Errorf("failed to render document: %w", err)
	}

	return Document{
		Text:      buf.String(),
		Bootstrap: bootstrap,
		Strategy:  strategy,
		Spliced:   spliced,
		Generated: generated,
	}, nil
}

// Summary describes a written document.
type Summary struct {
	GenerationID   uuid.UUID
	OutputPath     string
	Strategy       extract.Strategy
	BootstrapBytes int
	Spliced        bool
	SchemaBytes    int
	OutputBytes    int
	Schema         checksum.Fingerprint
	Output         checksum.Fingerprint
	Generated      time.Time
}

// File reads the schema and init files, renders the document and writes it
// to opts.OutputPath. Both inputs are read before anything is written.
func File(ctx context.Context, fsys filesystem.Provider, opts Options) (Summary, error) {
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}
	opts.applyDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	schema, err := filesystem.ReadText(fsys, opts.SchemaPath)
	if err != nil {
		return Summary{}, err
	}
	initSQL, err := filesystem.ReadText(fsys, opts.InitPath)
	if err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	doc, err := Render(string(schema), string(initSQL), opts)
	if err != nil {
		return Summary{}, err
	}

	switch doc.Strategy {
	case extract.StrategyNone:
		logger.Warn("No bootstrap section found in %s", opts.InitPath)
	case extract.StrategyStatementScan:
		logger.Verbose("Section markers missing in %s; collected INSERT statements instead", opts.InitPath)
	default:
		logger.Verbose("Bootstrap section found between %q and %q", opts.Markers.Start, opts.Markers.End)
	}
	if doc.Bootstrap.Found && !doc.Spliced {
		logger.Verbose("Extracted bootstrap fragment (%d bytes) not spliced; PART 3 uses built-in data", len(doc.Bootstrap.Text))
	}

	if err := fsys.WriteFile(opts.OutputPath, []byte(doc.Text)); err != nil {
		return Summary{}, fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
	}

	return Summary{
		GenerationID:   uuid.New(),
		OutputPath:     opts.OutputPath,
		Strategy:       doc.Strategy,
		BootstrapBytes: len(doc.Bootstrap.Text),
		Spliced:        doc.Spliced,
		SchemaBytes:    len(schema),
		OutputBytes:    len(doc.Text),
		Schema:         checksum.Of(schema),
		Output:         checksum.Of([]byte(doc.Text)),
		Generated:      doc.Generated,
	}, nil
}
