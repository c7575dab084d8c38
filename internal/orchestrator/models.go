package orchestrator

import (
	"cloudaudit/internal/audit"
	"cloudaudit/internal/report"
)

// Config contains all the parameters needed for one audit run.
type Config struct {
	ResourceIDs []string // Explicit identifiers; empty audits every visible resource
	Sections    []string // Requested section ids; empty selects all
	OutputDir   string   // Directory the report is written to
	OutputFile  string   // Report file name; empty uses the audit's default
	Format      string   // Output format (csv or json)
	Sentinel    string   // Placeholder for unavailable fields; empty uses N/A
	Account     string   // Account id shown in the summary
	Region      string   // Region shown in the summary
}

// Result contains the outcome of a completed audit run.
type Result struct {
	Audit       string
	Resources   int
	Rows        int
	Columns     int
	Unavailable int
	Destination string
	Table       *audit.Table
}

// Summary converts the result for the summary printer.
func (r *Result) Summary(account, region string) report.Summary {
	return report.Summary{
		Audit:       r.Audit,
		Account:     account,
		Region:      region,
		Resources:   r.Resources,
		Rows:        r.Rows,
		Columns:     r.Columns,
		Unavailable: r.Unavailable,
		Destination: r.Destination,
	}
}
