// Package bank loads question pools from disk.
//
// Two source shapes are supported: structured JSON records and
// line-oriented text files where each line encodes "prompt\answer".
// Loading is best-effort: malformed entries are skipped and the rest of
// the file still loads, and files with unrecognized extensions are
// silently ignored.
package bank

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pscheid92/quizpulse/internal/domain"
)

type questionRecord struct {
	Prompt  string   `json:"prompt"`
	Answers []string `json:"answers"`
	Tip     string   `json:"tip,omitempty"`
}

// LoadDir loads every recognized file in dir (sorted by name) into one
// ordered pool.
func LoadDir(dir string) ([]domain.Question, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read question directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var pool []domain.Question
	for _, name := range names {
		questions, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		pool = append(pool, questions...)
	}
	return pool, nil
}

// LoadFile loads one question file. Unrecognized extensions yield an
// empty result, not an error.
func LoadFile(path string) ([]domain.Question, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".txt":
		return loadText(path)
	default:
		slog.Debug("Skipping question file with unrecognized extension", "path", path)
		return nil, nil
	}
}

func loadJSON(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}

	var records []questionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse question file %s: %w", path, err)
	}

	questions := make([]domain.Question, 0, len(records))
	for i, rec := range records {
		answers := make([]string, 0, len(rec.Answers))
		for _, answer := range rec.Answers {
			if trimmed := strings.TrimSpace(answer); trimmed != "" {
				answers = append(answers, trimmed)
			}
		}
		if strings.TrimSpace(rec.Prompt) == "" || len(answers) == 0 {
			slog.Debug("Skipping malformed question record", "path", path, "index", i)
			continue
		}
		questions = append(questions, domain.Question{
			Prompt:  strings.TrimSpace(rec.Prompt),
			Answers: answers,
			Tip:     strings.TrimSpace(rec.Tip),
		})
	}
	return questions, nil
}

// loadText parses the line-oriented format: one question per line,
// prompt and single answer separated by a backslash.
func loadText(path string) ([]domain.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []domain.Question
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		prompt, answer, found := strings.Cut(line, `\`)
		prompt = strings.TrimSpace(prompt)
		answer = strings.TrimSpace(answer)
		if !found || prompt == "" || answer == "" {
			slog.Debug("Skipping malformed question line", "path", path, "line", lineNo)
			continue
		}

		questions = append(questions, domain.Question{
			Prompt:  prompt,
			Answers: []string{answer},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question file %s: %w", path, err)
	}
	return questions, nil
}
