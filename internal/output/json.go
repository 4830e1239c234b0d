package output

import (
	"encoding/json"

	"github.com/luminoshq/luminos/internal/core"
)

// JSONFormatter renders a diagnosis as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatDiagnosis renders the record as JSON.
func (f *JSONFormatter) FormatDiagnosis(rec *core.DiagnosisRecord) (string, error) {
	if rec == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(rec, "", "  ")
	} else {
		data, err = json.Marshal(rec)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
