package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"wikiqa/internal/logging"
)

const maxLineBytes = 4 * 1024 * 1024

// Layout describes how subject data files are named, encoded, and split.
type Layout struct {
	DataFile       string
	HeaderLines    int
	QuestionColumn int
	AnswerColumn   int
	Encoding       Encoding
}

// Pair is one question/answer row taken from a subject's data file.
type Pair struct {
	Subject  string
	Row      int
	Question string
	Answer   string
}

// Lines returns the pair as two newline-terminated output lines.
func (p Pair) Lines() []string {
	return []string{p.Question + "\n", p.Answer + "\n"}
}

// ReadSubject extracts every data row of the subject's data file.
func ReadSubject(ctx context.Context, subject Subject, layout Layout) ([]Pair, error) {
	path, err := DataFilePath(subject, layout.DataFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if !layout.Encoding.IsUTF8() && looksLikeUTF8(data) {
		logging.FromContext(ctx).Warn("data file looks like UTF-8 but is decoded as a single-byte encoding",
			zap.String("path", path),
			zap.String("encoding", layout.Encoding.Name),
		)
	}
	return parseRows(data, path, subject.Name, layout)
}

// ReadPairs reads every subject in order and concatenates their pairs. visit,
// when non-nil, is called after each subject with the pairs it contributed.
// The first failing subject aborts the read.
func ReadPairs(ctx context.Context, subjects []Subject, layout Layout, visit func(Subject, []Pair)) ([]Pair, error) {
	var pairs []Pair
	for _, subject := range subjects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		subjectPairs, err := ReadSubject(ctx, subject, layout)
		if err != nil {
			return nil, err
		}
		if visit != nil {
			visit(subject, subjectPairs)
		}
		pairs = append(pairs, subjectPairs...)
	}
	return pairs, nil
}

// Lines flattens pairs into alternating question and answer lines.
func Lines(pairs []Pair) []string {
	lines := make([]string, 0, 2*len(pairs))
	for _, pair := range pairs {
		lines = append(lines, pair.Lines()...)
	}
	return lines
}

func parseRows(data []byte, path, subject string, layout Layout) ([]Pair, error) {
	want := max(layout.QuestionColumn, layout.AnswerColumn) + 1
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanUniversalLines)

	var pairs []Pair
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= layout.HeaderLines {
			continue
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		line, ok := layout.Encoding.decode(raw)
		if !ok {
			return nil, &DecodeError{Path: path, Line: lineNo, Encoding: layout.Encoding.Name}
		}
		fields := strings.Split(line, "\t")
		if len(fields) < want {
			return nil, &MalformedRowError{Path: path, Line: lineNo, Fields: len(fields), Want: want}
		}
		pairs = append(pairs, Pair{
			Subject:  subject,
			Row:      lineNo,
			Question: fields[layout.QuestionColumn],
			Answer:   fields[layout.AnswerColumn],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return pairs, nil
}

// scanUniversalLines is a bufio.SplitFunc that ends lines at "\n", "\r\n", or a lone "\r".
func scanUniversalLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
