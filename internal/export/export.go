// Package export turns a product view into downloadable CSV, JSON and statistics documents.
package export

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"felmel/internal/config"
	"felmel/internal/logger"
	"felmel/internal/models"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatStats Format = "stats"
)

func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatStats:
		return Format(s), true
	}
	return "", false
}

// Document is a finished export ready for delivery.
type Document struct {
	Name     string
	MIMEType string
	Content  []byte
}

// NoDataError is returned when there is nothing to export.
type NoDataError struct {
	Format Format
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no products to export as %s", e.Format)
}

type Options struct {
	Headers         []string
	Delimiter       string
	Filename        string
	StatsFilename   string
	DiscountPercent float64
	Version         string
	Now             func() time.Time
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Headers:         cfg.ExportHeaders,
		Delimiter:       cfg.ExportDelimiter,
		Filename:        cfg.ExportFilename,
		DiscountPercent: cfg.DiscountPercent,
		Version:         cfg.AppVersion,
	}
}

// Request bundles what every export format may need.
type Request struct {
	Products    []models.Product
	TotalLoaded int
	FilterStats models.FilterStats
	FastLoad    bool
}

type Pipeline struct {
	opts    Options
	printer *message.Printer
	logger  *logger.Logger
}

func NewPipeline(opts Options, logger *logger.Logger) *Pipeline {
	if opts.Delimiter == "" {
		opts.Delimiter = ","
	}
	if opts.Filename == "" {
		opts.Filename = "productos_felmel"
	}
	if opts.StatsFilename == "" {
		opts.StatsFilename = "estadisticas_felmel"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Pipeline{
		opts:    opts,
		printer: message.NewPrinter(language.MustParse("es-CO")),
		logger:  logger,
	}
}

// Export dispatches to the builder for format.
func (p *Pipeline) Export(format Format, req Request) (*Document, error) {
	switch format {
	case FormatCSV:
		return p.ToCSV(req.Products)
	case FormatJSON:
		return p.ToJSON(req.Products, req.FilterStats.ActiveFilterCount > 0)
	case FormatStats:
		return p.ToStats(req.Products, req.TotalLoaded, req.FilterStats, req.FastLoad)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// documentName builds <base>_<YYYY-MM-DD>_<HHMM>.<ext>.
func (p *Pipeline) documentName(base, ext string) string {
	now := p.opts.Now()
	return fmt.Sprintf("%s_%s_%s.%s", base, now.Format("2006-01-02"), now.Format("1504"), ext)
}

// formatPrice renders an amount the way Colombian pesos are written, with two decimals.
func (p *Pipeline) formatPrice(v float64) string {
	return p.printer.Sprintf("%.2f", v)
}
