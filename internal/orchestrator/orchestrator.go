package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cloudaudit/internal/audit"
	"cloudaudit/internal/audits"
	awsprovider "cloudaudit/internal/providers/aws"
	"cloudaudit/internal/report"
	"cloudaudit/pkg/logging"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "output"

// ErrInvalidConfig marks run parameters rejected before any AWS call.
var ErrInvalidConfig = errors.New("invalid configuration")

// Service orchestrates one resource audit: discovery, section selection,
// assembly and export.
type Service struct {
	config     Config
	definition audits.Definition
	source     audit.Source
	exporter   report.IExporter
	printer    report.IPrinter
	logger     logging.Logger
	out        io.Writer
}

// NewService creates a new orchestrator service with the given configuration.
func NewService(
	config Config,
	definition audits.Definition,
	source audit.Source,
	exporter report.IExporter,
	printer report.IPrinter,
	logger logging.Logger,
) *Service {
	return &Service{
		config:     config,
		definition: definition,
		source:     source,
		exporter:   exporter,
		printer:    printer,
		logger:     logger,
		out:        os.Stdout,
	}
}

// NewDefaultService validates the configuration, then connects to AWS and
// creates a service with default implementations of dependencies. Nothing
// is sent to AWS when the configuration is invalid.
func NewDefaultService(ctx context.Context, config Config, definition audits.Definition, opts awsprovider.ClientOptions, logger logging.Logger) (*Service, error) {
	if _, _, err := config.resolve(definition); err != nil {
		return nil, err
	}

	clients, err := awsprovider.NewClientSet(ctx, opts, logger)
	if err != nil {
		return nil, err
	}

	if config.Account == "" {
		config.Account = clients.AccountID
	}
	if config.Region == "" {
		config.Region = clients.Region
	}

	source := definition.NewSource(clients, logger)
	return NewService(config, definition, source, report.DefaultExporter{}, report.DefaultPrinter{}, logger), nil
}

// Run executes the audit and writes the report.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	sections, format, err := s.config.resolve(s.definition)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Running %s audit with sections %v", s.definition.Name, sectionIDs(sections))

	records, err := audit.Discover(ctx, s.source, s.config.ResourceIDs)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Discovered %d %s(s)", len(records), s.source.Kind())

	rows := audit.Flatten(records, s.definition.ExpanderFor(sections))

	assembler := audit.NewAssembler(s.logger, s.config.Sentinel)
	table, err := assembler.Assemble(rows, s.definition.Identifying, sections)
	if err != nil {
		return nil, fmt.Errorf("%w: %s audit: %v", ErrInvalidConfig, s.definition.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	destination := s.destination(format)
	if err := s.exporter.Export(table, destination, format); err != nil {
		return nil, fmt.Errorf("error exporting %s report: %w", s.definition.Name, err)
	}

	result := &Result{
		Audit:       s.definition.Name,
		Resources:   len(records),
		Rows:        len(table.Rows),
		Columns:     table.Width(),
		Unavailable: countUnavailable(table),
		Destination: destination,
		Table:       table,
	}

	s.generateSummaryReport(result)
	return result, nil
}

// resolve validates the configuration and returns the sections to run and
// the output format.
func (c Config) resolve(definition audits.Definition) ([]audit.Section, report.OutputFormatType, error) {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sections, err := audit.Select(definition.Sections, audit.NewSelection(c.Sections...))
	if err != nil {
		return nil, "", err
	}
	return sections, format, nil
}

func (s *Service) destination(format report.OutputFormatType) string {
	dir := s.config.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	file := s.config.OutputFile
	if file == "" {
		file = s.definition.DefaultOutput
	}
	return report.Destination(dir, file, format)
}

// generateSummaryReport logs and prints the summary of a completed run.
func (s *Service) generateSummaryReport(result *Result) {
	if result.Unavailable > 0 {
		s.logger.Warn("%d cell(s) could not be read and hold a placeholder", result.Unavailable)
	}
	s.logger.Info("Audit data exported to %s", result.Destination)

	if s.printer == nil {
		return
	}
	if err := s.printer.PrintSummary(s.out, result.Summary(s.config.Account, s.config.Region)); err != nil {
		s.logger.Error("Failed to print summary: %v", err)
	}
}

// countUnavailable counts the sentinel cells of a table.
func countUnavailable(table *audit.Table) int {
	count := 0
	for _, row := range table.Rows {
		for _, cell := range row {
			if _, ok := cell.(audit.Unavailable); ok {
				count++
			}
		}
	}
	return count
}

func sectionIDs(sections []audit.Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}
