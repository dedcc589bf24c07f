package output

import (
	"encoding/json"
	"io"

	"github.com/codegate-sec/codegate/pkg/types"
)

// JSONFormatter renders the report as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, report *types.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
