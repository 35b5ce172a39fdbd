package special

import (
	"encoding/csv"
	"regexp"
	"strings"

	"github.com/dshills/transmute/internal/transform"
)

var multiSpace = regexp.MustCompile(`\s{2,}`)

// splitColumns breaks a line into fields: tabs win if present, otherwise
// runs of two or more spaces separate columns.
func splitColumns(line string) []string {
	if strings.Contains(line, "\t") {
		return strings.Split(line, "\t")
	}
	return multiSpace.Split(strings.TrimSpace(line), -1)
}

// CSVFormat converts tab- or space-aligned lines to CSV.
func CSVFormat(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, line := range strings.Split(strings.TrimSuffix(input, "\n"), "\n") {
		if err := w.Write(splitColumns(line)); err != nil {
			return "", transform.InputError("writing CSV row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", transform.InputError("writing CSV: %v", err)
	}
	return sb.String(), nil
}

// CSVUnformat converts CSV back to tab-separated lines.
func CSVUnformat(input string, _ transform.Options) (string, error) {
	if input == "" {
		return "", nil
	}
	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return "", transform.InputError("not valid CSV: %v", err)
	}
	var sb strings.Builder
	for _, record := range records {
		sb.WriteString(strings.Join(record, "\t"))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// MarkdownTable converts tab-separated or CSV lines to a Markdown table.
// The first row becomes the header.
func MarkdownTable(input string, _ transform.Options) (string, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return "", nil
	}

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "\t") {
			rows = append(rows, strings.Split(line, "\t"))
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		record, err := r.Read()
		if err != nil {
			return "", transform.InputError("not valid CSV row %q: %v", line, err)
		}
		rows = append(rows, record)
	}

	var out []string
	out = append(out, "| "+strings.Join(rows[0], " | ")+" |")

	sep := make([]string, len(rows[0]))
	for i := range sep {
		sep[i] = "---"
	}
	out = append(out, "|"+strings.Join(sep, "|")+"|")

	for _, row := range rows[1:] {
		out = append(out, "| "+strings.Join(row, " | ")+" |")
	}
	return strings.Join(out, "\n"), nil
}

// MarkdownBold wraps each non-blank line in **.
func MarkdownBold(input string, _ transform.Options) (string, error) {
	return wrapLines(input, "**", "**"), nil
}

// MarkdownItalic wraps each non-blank line in *.
func MarkdownItalic(input string, _ transform.Options) (string, error) {
	return wrapLines(input, "*", "*"), nil
}

// MarkdownInlineCode wraps each non-blank line in backticks.
func MarkdownInlineCode(input string, _ transform.Options) (string, error) {
	return wrapLines(input, "`", "`"), nil
}

// MarkdownCodeBlock wraps the whole input in a fenced code block.
func MarkdownCodeBlock(input string, _ transform.Options) (string, error) {
	return "```\n" + input + "\n```", nil
}

func wrapLines(input, prefix, suffix string) string {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line + suffix
		}
	}
	return strings.Join(lines, "\n")
}
