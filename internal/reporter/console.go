package reporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/exp/slices"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/output"
)

func NewConsoleReporter(output io.Writer, minSeverity checks.Severity) ConsoleReporter {
	return ConsoleReporter{output: output, minSeverity: minSeverity}
}

type ConsoleReporter struct {
	output      io.Writer
	minSeverity checks.Severity
}

func (cr ConsoleReporter) Submit(summary Summary) error {
	reports := summary.Reports()
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Path < reports[j].Path {
			return true
		}
		if reports[i].Path > reports[j].Path {
			return false
		}
		if reports[i].Problem.Lines[0] < reports[j].Problem.Lines[0] {
			return true
		}
		if reports[i].Problem.Lines[0] > reports[j].Problem.Lines[0] {
			return false
		}
		if reports[i].Problem.Reporter < reports[j].Problem.Reporter {
			return true
		}
		if reports[i].Problem.Reporter > reports[j].Problem.Reporter {
			return false
		}
		return reports[i].Problem.Text < reports[j].Problem.Text
	})

	perFile := map[string][]string{}
	for _, report := range reports {
		if report.Problem.Severity < cr.minSeverity {
			continue
		}

		if !shouldReport(report) {
			slog.Debug(
				"Problem reported on unmodified line, skipping",
				slog.String("path", report.Path),
				slog.String("lines", output.FormatLineRangeString(report.Problem.Lines)),
			)
			continue
		}

		if _, ok := perFile[report.Path]; !ok {
			perFile[report.Path] = []string{}
		}

		content, err := readFile(report.Path)
		if err != nil {
			return err
		}

		msg := []string{}

		firstLine, lastLine := report.Problem.LineRange()

		msg = append(msg, color.CyanString("%s:%s ", report.Path, printLineRange(firstLine, lastLine)))
		switch report.Problem.Severity {
		case checks.Bug, checks.Fatal:
			msg = append(msg, color.RedString("%s: %s", report.Problem.Severity, report.Problem.Text))
		case checks.Warning:
			msg = append(msg, color.YellowString("%s: %s", report.Problem.Severity, report.Problem.Text))
		case checks.Information:
			msg = append(msg, color.HiBlackString("%s: %s", report.Problem.Severity, report.Problem.Text))
		}
		msg = append(msg, color.MagentaString(" (%s)\n", report.Problem.Reporter))

		lines := strings.Split(content, "\n")
		if lastLine > len(lines)-1 {
			lastLine = len(lines) - 1
			slog.Warn(
				"Tried to read more lines than present in the source file, this is likely due to '\n' usage in some queries",
				slog.String("path", report.Path),
			)
		}

		nrFmt := fmt.Sprintf("%%%dd", countDigits(lastLine)+1)
		var inPlaceholder bool
		for i := firstLine; i <= lastLine; i++ {
			switch {
			case slices.Contains(report.Problem.Lines, i):
				msg = append(msg, color.WhiteString(nrFmt+" | %s\n", i, lines[i-1]))
				inPlaceholder = false
			case inPlaceholder:
				//
			default:
				msg = append(msg, color.WhiteString(" %s\n", strings.Repeat(".", countDigits(lastLine))))
				inPlaceholder = true
			}
		}
		perFile[report.Path] = append(perFile[report.Path], strings.Join(msg, ""))
	}

	paths := []string{}
	for path := range perFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		msgs := perFile[path]
		for _, msg := range msgs {
			fmt.Fprintln(cr.output, msg)
		}
	}

	return nil
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return string(content), nil
}

func printLineRange(s, e int) string {
	if s == e {
		return strconv.Itoa(s)
	}
	return fmt.Sprintf("%d-%d", s, e)
}

func countDigits(n int) (c int) {
	for n > 0 {
		n /= 10
		c++
	}
	return c
}
