package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"warikan/internal/domain"
)

// Format selects how a split result is rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a format name coming from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or text)", s)
}

// jsonEnvelope is the optional wrapper around a JSON result.
type jsonEnvelope struct {
	Success bool               `json:"success"`
	Data    *domain.BillOutput `json:"data"`
}

// FileResultWriter implements the ResultWriter interface, rendering split
// results as indented JSON or a plain-text summary.
type FileResultWriter struct {
	format   Format
	envelope bool
}

// NewResultWriter creates a writer for the given format. With envelope set,
// JSON results are wrapped as {"success": true, "data": ...}.
func NewResultWriter(format Format, envelope bool) *FileResultWriter {
	return &FileResultWriter{format: format, envelope: envelope}
}

// WriteResult renders the result and writes it to dest. An empty dest writes
// to stdout, which keeps file handling out of single-bill runs.
func (w *FileResultWriter) WriteResult(ctx context.Context, result domain.BillOutput, dest string) error {
	rendered, err := w.render(result)
	if err != nil {
		return err
	}

	if dest == "" {
		_, err := os.Stdout.Write(rendered)
		return err
	}
	if err := os.WriteFile(dest, rendered, 0o644); err != nil {
		return fmt.Errorf("failed to write result file %s: %w", dest, err)
	}
	return nil
}

// ResultPath returns where the result artifact for a bill goes:
// bills/dinner.json processed into out becomes out/dinner.result.json, or
// out/dinner.result.txt for text output.
func (w *FileResultWriter) ResultPath(outDir, billPath string) string {
	base := strings.TrimSuffix(filepath.Base(billPath), filepath.Ext(billPath))
	ext := ".result.json"
	if w.format == FormatText {
		ext = ".result.txt"
	}
	return filepath.Join(outDir, base+ext)
}

func (w *FileResultWriter) render(result domain.BillOutput) ([]byte, error) {
	if w.format == FormatText {
		return []byte(renderText(result)), nil
	}

	var payload any = result
	if w.envelope {
		payload = jsonEnvelope{Success: true, Data: &result}
	}
	rendered, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return append(rendered, '\n'), nil
}

// renderText builds the plain-text summary: header lines for the bill, a
// blank line, then one "name: amount" line per participant.
func renderText(result domain.BillOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Date: %s\n", result.Date)
	fmt.Fprintf(&sb, "Location: %s\n", result.Location)
	fmt.Fprintf(&sb, "Subtotal: %s\n", formatAmount(result.SubTotal))
	fmt.Fprintf(&sb, "Tip: %s\n", formatAmount(result.Tip))
	fmt.Fprintf(&sb, "Total: %s\n", formatAmount(result.TotalAmount))
	sb.WriteString("\n")
	for _, item := range result.Items {
		fmt.Fprintf(&sb, "%s: %s\n", item.Name, formatAmount(item.Amount))
	}
	return sb.String()
}

// formatAmount renders a monetary value in its shortest exact form: 77,
// 7.5, 70.25.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
