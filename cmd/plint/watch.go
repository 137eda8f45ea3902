package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/urfave/cli/v2"
	"go.uber.org/atomic"

	"github.com/lenslabs/plint/internal/config"
	"github.com/lenslabs/plint/internal/discovery"
	"github.com/lenslabs/plint/internal/output"
	"github.com/lenslabs/plint/internal/reporter"
)

const (
	intervalFlag = "interval"
	listenFlag   = "listen"
	pidfileFlag  = "pidfile"
)

var watchCmd = &cli.Command{
	Name:   "watch",
	Usage:  "Continuously lint specified files",
	Action: actionWatch,
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:    intervalFlag,
			Aliases: []string{"i"},
			Value:   time.Minute * 10,
			Usage:   "How often to run all checks",
		},
		&cli.StringFlag{
			Name:    listenFlag,
			Aliases: []string{"s"},
			Value:   ":8080",
			Usage:   "Listen address for HTTP web server exposing metrics",
		},
		&cli.StringFlag{
			Name:    pidfileFlag,
			Aliases: []string{"p"},
			Usage:   "Write pid file to this path",
		},
	},
}

func actionWatch(c *cli.Context) error {
	meta, err := actionSetup(c)
	if err != nil {
		return err
	}

	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("at least one file or directory required")
	}

	pidfile := c.String(pidfileFlag)
	if pidfile != "" {
		pid := os.Getpid()
		err = os.WriteFile(pidfile, []byte(fmt.Sprintf("%d\n", pid)), 0o644)
		if err != nil {
			return err
		}
		slog.Info("Pidfile created", slog.String("path", pidfile))
		defer func() {
			pidErr := os.RemoveAll(pidfile)
			if pidErr != nil {
				slog.Error("Failed to remove pidfile", slog.Any("err", pidErr), slog.String("path", pidfile))
			}
			slog.Info("Pidfile removed", slog.String("path", pidfile))
		}()
	}

	// start HTTP server for metrics
	collector := newProblemCollector(meta.cfg, paths, meta.workers)
	prometheus.MustRegister(collector)
	prometheus.MustRegister(plintVersion)
	prometheus.MustRegister(checkDuration)
	prometheus.MustRegister(checkIterationsTotal)
	prometheus.MustRegister(checkIterationChecks)
	prometheus.MustRegister(checkIterationChecksDone)
	prometheus.MustRegister(lastRunTime)
	prometheus.MustRegister(lastRunDuration)
	prometheus.MustRegister(panelsParsedTotal)
	plintVersion.WithLabelValues(version).Set(1)
	http.Handle("/metrics", promhttp.Handler())
	listen := c.String(listenFlag)
	server := http.Server{
		Addr:         listen,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
	}
	go func() {
		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("HTTP server returned an error", slog.Any("err", serveErr), slog.String("listen", listen))
		}
	}()
	slog.Info("Started HTTP server", slog.String("address", listen))

	mainCtx, cancel := context.WithCancel(context.Background())

	// start timer to run every $interval
	interval := c.Duration(intervalFlag)
	ack := make(chan bool, 1)
	stop := startTimer(mainCtx, interval, ack, collector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	cancel()

	ctx, cancelServer := context.WithTimeout(context.Background(), time.Minute)
	defer cancelServer()
	if err = server.Shutdown(ctx); err != nil {
		slog.Error("HTTP server returned an error while shutting down", slog.Any("err", err))
	}

	stop <- true
	slog.Info("Waiting for all background tasks to finish")
	<-ack

	return nil
}

func startTimer(ctx context.Context, interval time.Duration, ack chan bool, collector *problemCollector) chan bool {
	ticker := time.NewTicker(time.Second)
	stop := make(chan bool, 1)
	wasBootstrapped := false

	go func() {
		for {
			select {
			case <-ticker.C:
				slog.Debug("Running checks")
				if !wasBootstrapped {
					ticker.Reset(interval)
					wasBootstrapped = true
				}
				if err := collector.scan(ctx); err != nil {
					slog.Error("Got an error when running checks", slog.Any("err", err))
				}
				checkIterationsTotal.Inc()
			case <-stop:
				ticker.Stop()
				slog.Info("Background worker finished")
				ack <- true
				return
			}
		}
	}()
	slog.Info("Will continuously run checks until terminated", slog.String("interval", interval.String()))

	return stop
}

type problemCollector struct {
	summary  *atomic.Pointer[reporter.Summary]
	lastHash *atomic.Uint64
	problem  *prometheus.Desc
	problems *prometheus.Desc
	cfg      config.Config
	paths    []string
	workers  int
}

func newProblemCollector(cfg config.Config, paths []string, workers int) *problemCollector {
	return &problemCollector{
		summary:  atomic.NewPointer[reporter.Summary](nil),
		lastHash: atomic.NewUint64(0),
		cfg:      cfg,
		paths:    paths,
		workers:  workers,
		problem: prometheus.NewDesc(
			"plint_problem",
			"Panel problem reported by plint",
			[]string{"filename", "panel", "severity", "reporter", "problem", "lines"},
			prometheus.Labels{},
		),
		problems: prometheus.NewDesc(
			"plint_problems",
			"Total number of problems reported by plint",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *problemCollector) scan(ctx context.Context) error {
	finder := discovery.NewGlobFinder(
		c.paths,
		discovery.NewPathFilter(c.cfg.Parser.CompileInclude(), c.cfg.Parser.CompileExclude()),
	)
	entries, err := finder.Find()
	if err != nil {
		return err
	}

	// hash of all discovered files, used to skip runs when nothing changed
	h := xxhash.New()
	for _, entry := range entries {
		_, _ = fmt.Fprintf(h, "%s\n%d\n", entry.Path, entry.ContentHash)
	}
	sum := h.Sum64()
	if sum == c.lastHash.Load() && c.summary.Load() != nil {
		slog.Debug("No file changes detected, skipping checks", slog.Int("files", len(entries)))
		return nil
	}

	summary := checkPanels(ctx, c.workers, c.cfg, entries)
	c.summary.Store(&summary)
	c.lastHash.Store(sum)
	slog.Info("Finished running checks on all files",
		slog.Int("files", len(entries)),
		slog.String("duration", output.HumanizeDuration(summary.Duration)),
	)

	return nil
}

func (c *problemCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.problem
	ch <- c.problems
}

func (c *problemCollector) Collect(ch chan<- prometheus.Metric) {
	summary := c.summary.Load()
	if summary == nil {
		return
	}

	done := map[string]struct{}{}

	for _, report := range summary.Reports() {
		metric := prometheus.MustNewConstMetric(
			c.problem,
			prometheus.GaugeValue,
			1,
			report.Path,
			report.Panel.Name(),
			strings.ToLower(report.Problem.Severity.String()),
			report.Problem.Reporter,
			report.Problem.Text,
			output.FormatLineRangeString(report.Problem.Lines),
		)

		var out dto.Metric
		err := metric.Write(&out)
		if err != nil {
			slog.Error("Failed to write metric to a buffer", slog.Any("err", err))
			continue
		}

		key := out.String()
		if _, ok := done[key]; ok {
			continue
		}

		ch <- metric
		done[key] = struct{}{}
	}

	ch <- prometheus.MustNewConstMetric(c.problems, prometheus.GaugeValue, float64(len(done)))
}
