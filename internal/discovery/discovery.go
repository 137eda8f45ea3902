package discovery

import (
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/lenslabs/plint/internal/output"
	"github.com/lenslabs/plint/internal/parser"
)

const (
	FileOwnerComment    = "file/owner"
	DisableCheckComment = "disable"
)

type PanelFinder interface {
	Find() ([]Entry, error)
}

type Entry struct {
	PathError      error
	Path           string
	Owner          string
	ModifiedLines  []int
	DisabledChecks []string
	Panel          parser.Panel
	ContentHash    uint64
}

func readFile(path string) (entries []Entry, err error) {
	p := parser.NewParser()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	content, err := parser.ReadContent(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	if content.Ignored {
		slog.Debug("File ignored via comment", slog.String("path", path))
		return nil, nil
	}

	body := string(content.Body)

	contentLines := []int{}
	for i := 1; i <= strings.Count(body, "\n"); i++ {
		contentLines = append(contentLines, i)
	}

	contentHash := xxhash.Sum64(content.Body)

	fileOwner, _ := parser.GetLastComment(body, FileOwnerComment)

	var disabledChecks []string
	for _, comment := range parser.GetComments(body, DisableCheckComment) {
		disabledChecks = append(disabledChecks, comment.Value)
	}

	panels, err := p.Parse(content.Body)
	if err != nil {
		slog.Error("Failed to parse file content",
			slog.Any("err", err),
			slog.String("path", path),
			slog.String("lines", output.FormatLineRangeString(contentLines)),
		)
		entries = append(entries, Entry{
			Path:           path,
			PathError:      err,
			Owner:          fileOwner.Value,
			ModifiedLines:  contentLines,
			DisabledChecks: disabledChecks,
			ContentHash:    contentHash,
		})
		return entries, nil
	}

	for _, panel := range panels {
		entries = append(entries, Entry{
			Path:           path,
			Panel:          panel,
			Owner:          fileOwner.Value,
			DisabledChecks: disabledChecks,
			ContentHash:    contentHash,
		})
	}

	slog.Info("File parsed", slog.String("path", path), slog.Int("panels", len(entries)))
	return entries, nil
}

func matchesAny(re []*regexp.Regexp, s string) bool {
	for _, r := range re {
		if v := r.MatchString(s); v {
			return true
		}
	}
	return false
}
