package main

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/config"
	"github.com/lenslabs/plint/internal/discovery"
	"github.com/lenslabs/plint/internal/output"
	"github.com/lenslabs/plint/internal/parser"
	"github.com/lenslabs/plint/internal/reporter"
)

var (
	yamlErrRe          = regexp.MustCompile("^yaml: line (.+): (.+)")
	yamlUnmarshalErrRe = regexp.MustCompile("^yaml: unmarshal errors:\n  line (.+): (.+)")
)

const yamlParseReporter = "yaml/parse"

func tryDecodingYamlError(e string) (int, string) {
	for _, re := range []*regexp.Regexp{yamlErrRe, yamlUnmarshalErrRe} {
		parts := re.FindStringSubmatch(e)
		if len(parts) > 2 {
			line, err := strconv.Atoi(parts[1])
			if err != nil {
				return 1, e
			}
			return line, parts[2]
		}
	}
	return 1, e
}

func checkPanels(ctx context.Context, workers int, cfg config.Config, entries []discovery.Entry) (summary reporter.Summary) {
	checkIterationChecks.Set(float64(len(entries)))
	checkIterationChecksDone.Set(0)

	start := time.Now()
	checkedPanels := atomic.NewInt64(0)

	jobs := make(chan scanJob, workers*5)
	results := make(chan reporter.Report, workers*5)
	wg := sync.WaitGroup{}

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scanWorker(ctx, jobs, results)
		}()
	}

	go func() {
		defer close(results)
		wg.Wait()
	}()

	go func() {
		defer close(jobs)
		for _, entry := range entries {
			if entry.PathError == nil && entry.Panel.Error.Err == nil {
				panelsParsedTotal.WithLabelValues(string(entry.Panel.Type())).Inc()
				slog.Debug("Found panel",
					slog.String("path", entry.Path),
					slog.String("panel", entry.Panel.Name()),
					slog.String("lines", output.FormatLineRangeString(entry.Panel.Lines())),
				)
				checkedPanels.Inc()
				for _, check := range cfg.GetChecksForQuery(entry.Path, entry.Panel, entry.DisabledChecks) {
					jobs <- scanJob{entry: entry, check: check}
				}
			} else {
				if entry.Panel.Error.Err != nil {
					slog.Debug("Found invalid panel",
						slog.String("path", entry.Path),
						slog.String("lines", output.FormatLineRangeString(entry.Panel.Lines())),
					)
					panelsParsedTotal.WithLabelValues(string(parser.InvalidType)).Inc()
				}
				jobs <- scanJob{entry: entry, check: nil}
			}
			checkIterationChecksDone.Inc()
		}
	}()

	for result := range results {
		summary.Report(result)
	}
	summary.SortReports()
	summary.Duration = time.Since(start)
	summary.TotalEntries = len(entries)
	summary.CheckedPanels = checkedPanels.Load()

	lastRunDuration.Set(summary.Duration.Seconds())
	lastRunTime.SetToCurrentTime()

	return summary
}

type scanJob struct {
	check checks.QueryChecker
	entry discovery.Entry
}

func scanWorker(ctx context.Context, jobs <-chan scanJob, results chan<- reporter.Report) {
	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			switch {
			case job.entry.PathError != nil:
				line, e := tryDecodingYamlError(job.entry.PathError.Error())
				results <- reporter.Report{
					Path:          job.entry.Path,
					Owner:         job.entry.Owner,
					ModifiedLines: job.entry.ModifiedLines,
					Problem: checks.Problem{
						Lines:    []int{line},
						Reporter: yamlParseReporter,
						Text:     e,
						Severity: checks.Fatal,
					},
				}
			case job.entry.Panel.Error.Err != nil:
				results <- reporter.Report{
					Path:          job.entry.Path,
					Owner:         job.entry.Owner,
					ModifiedLines: job.entry.ModifiedLines,
					Panel:         job.entry.Panel,
					Problem: checks.Problem{
						Fragment: job.entry.Panel.Error.Fragment,
						Lines:    []int{job.entry.Panel.Error.Line},
						Reporter: yamlParseReporter,
						Text:     job.entry.Panel.Error.Err.Error(),
						Severity: checks.Fatal,
					},
				}
			default:
				start := time.Now()
				problems := job.check.Check(ctx, job.entry.Path, job.entry.Panel)
				checkDuration.WithLabelValues(job.check.Reporter()).Observe(time.Since(start).Seconds())
				for _, problem := range problems {
					results <- reporter.Report{
						Path:          job.entry.Path,
						Owner:         job.entry.Owner,
						ModifiedLines: job.entry.ModifiedLines,
						Panel:         job.entry.Panel,
						Problem:       problem,
					}
				}
			}
		}
	}
}

func submitReports(reps []reporter.Reporter, summary reporter.Summary) (err error) {
	for _, rep := range reps {
		err = rep.Submit(summary)
		if err != nil {
			return err
		}
	}
	return nil
}

func logSeverityCounters(src map[checks.Severity]int) (attrs []any) {
	for _, s := range []checks.Severity{checks.Fatal, checks.Bug, checks.Warning, checks.Information} {
		if c, ok := src[s]; ok {
			attrs = append(attrs, slog.Attr{Key: s.String(), Value: slog.IntValue(c)})
		}
	}
	return attrs
}
