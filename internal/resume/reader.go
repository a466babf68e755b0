package resume

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/puchtools/puchcal/internal/fault"
)

// ExtractText returns the plain text of the PDF at path. A missing file
// is a not_found fault; anything that cannot be parsed as a PDF is a
// format fault. The parser library panics on some malformed inputs, so
// extraction runs behind a recover.
func ExtractText(path string) (text string, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return "", fault.Wrap(fault.KindNotFound, statErr, "resume file %q not found", path)
		}
		return "", fmt.Errorf("checking resume file %q: %w", path, statErr)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fault.New(fault.KindFormat, "parsing %q as PDF: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fault.Wrap(fault.KindFormat, err, "parsing %q as PDF", path)
	}
	defer f.Close()

	var sb strings.Builder
	buf, err := reader.GetPlainText()
	if err != nil {
		return "", fault.Wrap(fault.KindFormat, err, "extracting text from %q", path)
	}
	if _, err := io.Copy(&sb, buf); err != nil {
		return "", fault.Wrap(fault.KindFormat, err, "extracting text from %q", path)
	}

	return collapseBlankLines(sb.String()), nil
}

// collapseBlankLines trims trailing whitespace per line and squeezes
// runs of blank lines down to one.
func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
