package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fieldsift/fieldsift/internal/model"
)

// jsonResult is the top-level shape of the JSON output
type jsonResult struct {
	Summary Summary        `json:"summary"`
	Records []model.Record `json:"records"`
}

// WriteJSON writes the records and their summary as indented JSON
func WriteJSON(path string, records []model.Record) error {
	out := jsonResult{
		Summary: Summarize(records),
		Records: records,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
