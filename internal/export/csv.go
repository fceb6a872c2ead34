package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fieldsift/fieldsift/internal/model"
)

var csvHeader = []string{"document", "rule", "value", "found", "confidence", "method", "alternative"}

// WriteCSV writes the records to path, one row per (document, rule) pair,
// in the order given.
func WriteCSV(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.DocumentID,
			r.RuleName,
			r.Value,
			strconv.FormatBool(r.Found),
			strconv.FormatFloat(r.Confidence, 'f', 2, 64),
			string(r.Method),
			strconv.Itoa(r.MatchedAlternative),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
