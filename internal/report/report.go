package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"cloudaudit/internal/audit"
)

// Summary describes one completed audit run.
type Summary struct {
	Audit       string
	Account     string
	Region      string
	Resources   int
	Rows        int
	Columns     int
	Unavailable int
	Destination string
}

// Export writes the table to destination in the given format. The file is
// written to a temporary name in the same directory and renamed into place,
// so a failed export never leaves a partial report behind.
func Export(table *audit.Table, destination string, format OutputFormatType) error {
	var buf bytes.Buffer

	switch format {
	case OutputFormatTypeCSV, "":
		if err := writeCSV(&buf, table); err != nil {
			return err
		}
	case OutputFormatTypeJSON:
		if err := writeJSON(&buf, table); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	return writeFileAtomic(destination, buf.Bytes())
}

// writeCSV writes the header and one line per row
func writeCSV(w io.Writer, table *audit.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	record := make([]string, table.Width())
	for i, row := range table.Rows {
		if len(row) != table.Width() {
			return fmt.Errorf("row %d has %d cells, header has %d", i, len(row), table.Width())
		}
		for j, cell := range row {
			record[j] = FormatValue(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeJSON writes an array of objects whose keys follow header order
func writeJSON(w io.Writer, table *audit.Table) error {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, row := range table.Rows {
		if len(row) != table.Width() {
			return fmt.Errorf("row %d has %d cells, header has %d", i, len(row), table.Width())
		}
		if i > 0 {
			compact.WriteByte(',')
		}
		compact.WriteByte('{')
		for j, column := range table.Header {
			if j > 0 {
				compact.WriteByte(',')
			}
			key, _ := json.Marshal(column)
			value, err := json.Marshal(jsonValue(row[j]))
			if err != nil {
				return fmt.Errorf("error marshaling %s of row %d: %w", column, i, err)
			}
			compact.Write(key)
			compact.WriteByte(':')
			compact.Write(value)
		}
		compact.WriteByte('}')
	}
	compact.WriteByte(']')

	var indented bytes.Buffer
	if err := json.Indent(&indented, compact.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("error formatting JSON report: %w", err)
	}
	indented.WriteByte('\n')

	_, err := w.Write(indented.Bytes())
	return err
}

func writeFileAtomic(destination string, data []byte) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destination)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary report file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing report: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("error setting report permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing report: %w", err)
	}

	if err := os.Rename(tmpName, destination); err != nil {
		return fmt.Errorf("error moving report into place: %w", err)
	}
	return nil
}

// PrintSummary prints the run summary in a human-friendly table format
func PrintSummary(w io.Writer, summary Summary) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(writer, "\nAUDIT:\t%s\n", summary.Audit)
	if summary.Account != "" {
		fmt.Fprintf(writer, "ACCOUNT:\t%s\n", summary.Account)
	}
	if summary.Region != "" {
		fmt.Fprintf(writer, "REGION:\t%s\n", summary.Region)
	}
	fmt.Fprintln(writer, "")
	fmt.Fprintf(writer, "Resources\t%d\n", summary.Resources)
	fmt.Fprintf(writer, "Rows\t%d\n", summary.Rows)
	fmt.Fprintf(writer, "Columns\t%d\n", summary.Columns)
	fmt.Fprintf(writer, "Unavailable cells\t%d\n", summary.Unavailable)
	fmt.Fprintln(writer, "")
	fmt.Fprintf(writer, "Audit data exported to %s\n", summary.Destination)

	return writer.Flush()
}

// DefaultExporter is the default implementation of the report exporter
type DefaultExporter struct{}

// Export implements the exporter interface
func (e DefaultExporter) Export(table *audit.Table, destination string, format OutputFormatType) error {
	return Export(table, destination, format)
}

// DefaultPrinter is the default implementation of the summary printer
type DefaultPrinter struct{}

// PrintSummary implements the printer interface
func (p DefaultPrinter) PrintSummary(w io.Writer, summary Summary) error {
	return PrintSummary(w, summary)
}
