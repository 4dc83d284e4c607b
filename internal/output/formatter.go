package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/plan4you/internal/advisor"
)

// Formatter renders a recommendation in one output format.
type Formatter interface {
	Name() string
	Format(rec *advisor.Recommendation) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(rec *advisor.Recommendation) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(rec *advisor.Recommendation) ([]byte, error) { return f.F(rec) }

var formatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{Pretty: true},
	CSVFormatter{},
	YAMLFormatter{},
	HTMLFormatter{},
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FormatterNames lists the registered formatter names.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// WriteFormatted renders rec and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, rec *advisor.Recommendation, ext string) (string, error) {
	data, err := f.Format(rec)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("eligibility_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
