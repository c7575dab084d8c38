package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"cloudaudit/pkg/logging"
)

// DefaultFile is read when no --config is given and it exists in the working directory.
const DefaultFile = "cloudaudit.hcl"

// File represents the top-level structure of a cloudaudit HCL file.
type File struct {
	Profile   string        `hcl:"profile,optional"`
	Region    string        `hcl:"region,optional"`
	OutputDir string        `hcl:"output_dir,optional"`
	Format    string        `hcl:"format,optional"`
	Sentinel  string        `hcl:"sentinel,optional"`
	LogLevel  string        `hcl:"log_level,optional"`
	JSONLogs  *bool         `hcl:"json_logs,optional"`
	Audits    []*AuditBlock `hcl:"audit,block"`
}

// AuditBlock represents one audit "<name>" { ... } block.
type AuditBlock struct {
	Name       string   `hcl:"name,label"`
	Resources  []string `hcl:"resources,optional"`
	Sections   []string `hcl:"sections,optional"`
	OutputFile string   `hcl:"output_file,optional"`
}

// Parser reads cloudaudit HCL files
type Parser struct {
	logger logging.Logger
}

// NewParserWithLogger creates a new instance of Parser with a specific logger
func NewParserWithLogger(logger logging.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ParseFile parses an HCL configuration file. Audit names listed in known
// are the only ones accepted as block labels.
func (p *Parser) ParseFile(path string, known []string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to parse HCL file: %s", diags.Error())}
	}

	if file == nil || file.Body == nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("parsed HCL file is empty or invalid")}
	}

	var cfg File
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to decode HCL body: %s", diags.Error())}
	}

	if err := cfg.validate(known); err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	p.logger.Debug("Loaded configuration from %s with %d audit block(s)", path, len(cfg.Audits))
	return &cfg, nil
}

func (f *File) validate(known []string) error {
	allowed := make(map[string]bool, len(known))
	for _, name := range known {
		allowed[name] = true
	}

	seen := make(map[string]bool, len(f.Audits))
	for _, block := range f.Audits {
		if len(known) > 0 && !allowed[block.Name] {
			return fmt.Errorf("unknown audit %q (available: %v)", block.Name, known)
		}
		if seen[block.Name] {
			return fmt.Errorf("audit %q is declared more than once", block.Name)
		}
		seen[block.Name] = true
	}
	return nil
}

// Audit returns the block for name, or nil.
func (f *File) Audit(name string) *AuditBlock {
	if f == nil {
		return nil
	}
	for _, block := range f.Audits {
		if block.Name == name {
			return block
		}
	}
	return nil
}
