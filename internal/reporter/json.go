package reporter

import (
	"encoding/json"
	"os"

	"github.com/lenslabs/plint/internal/checks"
)

func NewJSONReporter(path string) JSONReporter {
	return JSONReporter{path}
}

type JSONReporter struct {
	path string
}

type JSONReport struct {
	Path    string          `json:"path"`
	Owner   string          `json:"owner"`
	Panel   JSONReportPanel `json:"panel"`
	Problem checks.Problem  `json:"problem"`
}

type JSONReportPanel struct {
	Name string `json:"name"`
	Viz  string `json:"viz"`
	Type string `json:"type"`
}

func (cr JSONReporter) Submit(summary Summary) error {
	reports := summary.Reports()
	jsonReports := make([]JSONReport, 0, len(reports))
	for _, report := range reports {
		jsonReports = append(jsonReports, JSONReport{
			Path:    report.Path,
			Owner:   report.Owner,
			Problem: report.Problem,
			Panel: JSONReportPanel{
				Name: report.Panel.Name(),
				Viz:  report.Panel.VizType(),
				Type: string(report.Panel.Type()),
			},
		})
	}
	result, err := json.MarshalIndent(jsonReports, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.Create(cr.path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(string(result))
	return err
}
