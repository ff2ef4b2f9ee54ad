package trial

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/gpias-marker/logging"
)

const (
	exportSuffix       = " - marked.csv"
	fallbackExportName = "exported_data.csv"
)

// Load reads a delimited table (optionally gzip, bzip2 or xz compressed) or
// the first sheet of an .xlsx workbook. Every failure is a *LoadError; a
// missing required column additionally matches *SchemaError.
func Load(path string, trialLen int) (*Table, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	t, err := FromRecords(records, trialLen)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	logging.Infof("Loaded %s: %d rows, %d trials", path, t.Len(), t.TotalTrials())
	return t, nil
}

func readRecords(path string) ([][]string, error) {
	if isXLSX(path) {
		return readXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, c, err := decompressed(f)
	if err != nil {
		return nil, err
	}
	if c != CompressionNone {
		logging.Debugf("Reading %s as %s", path, c)
	}

	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("file has no header row")
	}
	return records, nil
}

// Export writes the whole table, Status included, to path. A path ending in
// .xlsx produces a workbook, anything else CSV. The file is replaced only
// once the new content has been written completely.
func Export(t *Table, path string) error {
	if err := writeReplace(path, func(w io.Writer) error {
		if isXLSX(path) {
			return writeXLSX(w, t.Records())
		}
		return writeCSV(w, t.Records())
	}); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	logging.Infof("Exported %d rows to %s", t.Len(), path)
	return nil
}

func writeCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	for i, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// writeReplace writes through a temporary file in the destination
// directory and renames it over path.
func writeReplace(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// DefaultExportName suggests an output name next to the source file.
func DefaultExportName(source string) string {
	base := filepath.Base(source)
	if source == "" || base == "." || base == string(filepath.Separator) {
		return fallbackExportName
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + exportSuffix
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
