package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// commentPrefix marks control comments, as in `# plint ignore/line`.
const commentPrefix = "plint"

type skipMode int

const (
	skipNone skipMode = iota
	skipNextLine
	skipBegin
	skipEnd
	skipCurrentLine
	skipFile
)

var skipComments = map[string]skipMode{
	"ignore/file":      skipFile,
	"ignore/line":      skipCurrentLine,
	"ignore/next-line": skipNextLine,
	"ignore/begin":     skipBegin,
	"ignore/end":       skipEnd,
}

func removeRedundantSpaces(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

func emptyLine(line string) (emptied string) {
	preComment := strings.TrimSuffix(line, "\n")
	var comment string
	if commentStart := strings.IndexRune(line, '#'); commentStart >= 0 {
		comment = preComment[commentStart:]
		preComment = preComment[:commentStart]
	}

	emptied = strings.Repeat(" ", len(preComment)) + comment

	if strings.HasSuffix(line, "\n") {
		emptied += "\n"
	}

	return emptied
}

func parseSkipComment(line string) (skipMode, bool) {
	sc := bufio.NewScanner(strings.NewReader(line))
	for sc.Scan() {
		elems := strings.Split(sc.Text(), "#")
		lastComment := elems[len(elems)-1]
		parts := strings.SplitN(removeRedundantSpaces(lastComment), " ", 2)
		if len(parts) < 2 || parts[0] != commentPrefix {
			continue
		}
		if mode, ok := skipComments[parts[1]]; ok {
			return mode, true
		}
	}
	return skipNone, false
}

type Content struct {
	Body    []byte
	Ignored bool
}

// ReadContent reads panel file content while honoring ignore comments.
// Ignored lines are replaced with blanks of the same width so that any
// line number reported for the returned body still maps to the source.
func ReadContent(r io.Reader) (out Content, err error) {
	reader := bufio.NewReader(r)
	var line string
	var found bool
	var skip skipMode

	var skipNext bool
	var autoReset bool
	var skipAll bool
	var inBegin bool
	for {
		line, err = reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			break
		}

		if skipAll {
			out.Body = append(out.Body, []byte(emptyLine(line))...)
		} else {
			skip, found = parseSkipComment(line)
			switch {
			case found:
				switch skip {
				case skipNone:
					// no-op
				case skipFile:
					out.Ignored = true
					out.Body = append(out.Body, []byte(emptyLine(line))...)
					skipNext = true
					autoReset = false
					skipAll = true
				case skipCurrentLine:
					out.Body = append(out.Body, []byte(emptyLine(line))...)
					if !inBegin {
						skipNext = false
						autoReset = true
					}
				case skipNextLine:
					out.Body = append(out.Body, []byte(line)...)
					skipNext = true
					autoReset = true
				case skipBegin:
					out.Body = append(out.Body, []byte(line)...)
					skipNext = true
					autoReset = false
					inBegin = true
				case skipEnd:
					out.Body = append(out.Body, []byte(line)...)
					skipNext = false
					autoReset = true
					inBegin = false
				}
			case skipNext:
				out.Body = append(out.Body, []byte(emptyLine(line))...)
				if autoReset {
					skipNext = false
				}
			default:
				out.Body = append(out.Body, []byte(line)...)
			}
		}

		if err != nil {
			break
		}
	}

	if !errors.Is(err, io.EOF) {
		return out, err
	}

	return out, nil
}

type Comment struct {
	Key   string
	Value string
}

func (c Comment) String() string {
	return c.Key + " " + c.Value
}

// GetComments returns all control comments with the given key path,
// for example GetComments(text, "disable") finds `# plint disable X`
// lines and returns X as the value.
func GetComments(text string, comment ...string) (comments []Comment) {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		elems := strings.Split(sc.Text(), "#")
		lastComment := elems[len(elems)-1]
		parts := strings.Split(removeRedundantSpaces(lastComment), " ")
		if len(parts) < 2 {
			continue
		}
		keys := make([]string, 0, len(parts))
		values := make([]string, 0, len(parts))
		if parts[0] == commentPrefix && len(parts) >= len(comment)+1 {
			for i, c := range comment {
				if parts[i+1] != c {
					goto NEXT
				}
				keys = append(keys, parts[i+1])
			}
			for i := len(comment) + 1; i < len(parts); i++ {
				values = append(values, parts[i])
			}
			comments = append(comments, Comment{
				Key:   strings.Join(keys, " "),
				Value: strings.Join(values, " "),
			})
		}
	NEXT:
	}

	return comments
}

func GetLastComment(text string, comment ...string) (Comment, bool) {
	comments := GetComments(text, comment...)
	if len(comments) == 0 {
		return Comment{}, false
	}
	return comments[len(comments)-1], true
}
