package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer handles formatted output to a writer.
// It supports both JSON and human-readable output modes.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Border  lipgloss.Color
}

func colorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),           // Green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // Yellow
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")), // Blue
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Border:  lipgloss.Color("8"),
	}
}

func plainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:   plain,
		Success: plain,
		Warning: plain,
		Bold:    plain,
		Dim:     plain,
		Title:   plain,
		Muted:   plain,
		Key:     plain,
		Border:  lipgloss.Color(""),
	}
}

// NewPrinter creates a new Printer.
// If jsonMode is true, output will be JSON formatted.
// If isTTY is true, colors will be enabled for human output.
func NewPrinter(writer io.Writer, jsonMode bool, isTTY bool) *Printer {
	styles := plainStyles()
	if isTTY {
		styles = colorStyles()
	}
	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: styles,
	}
}

// WithStderr sets a separate writer for errors and warnings in human mode.
// In JSON mode, errors still go to the main writer (structured protocol).
// Returns the printer for chaining.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON returns true if the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Success outputs a success result.
// For JSON mode, outputs the data as JSON.
// For human mode, looks for a "message" key or pretty-prints the data.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.writeJSON(data)
	}

	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(msg)))
		return nil
	}

	for key, val := range data {
		mustWrite(fmt.Fprintf(p.w, "%s: %v\n", p.styles.Bold.Render(key), val))
	}
	return nil
}

// Error outputs an error.
// For JSON mode, outputs {"error": "...", "code": N} to stdout.
// For human mode, outputs a styled error message to stderr (if set).
// Silent errors produce no output in either mode.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{
			Code:    ExitFailure,
			Message: err.Error(),
		}
	}
	if exitErr.Silent {
		return
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}

	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Message))
}

// Warn outputs a warning message.
// For JSON mode, outputs {"warning": "..."} to stdout.
// For human mode, outputs a styled warning to stderr (if set).
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.writeJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Fail reports that a file failed a check: "<file> fails <check>".
// No-op in JSON mode; failures are part of the final document there.
func (p *Printer) Fail(subject, check string) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.w, "%s %s %s\n",
		p.styles.Bold.Render(subject), p.styles.Error.Render("fails"), check))
}

// Diagnostics echoes a tool's raw output for operator visibility.
// TTY output is framed in a border; piped output is written verbatim.
func (p *Printer) Diagnostics(text string) {
	if p.json {
		return
	}
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	if !p.isTTY {
		mustWrite(fmt.Fprintln(p.w, text))
		return
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.styles.Border).
		PaddingLeft(1)
	mustWrite(fmt.Fprintln(p.w, style.Render(text)))
}

// Print formats and writes to the output without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// Dim renders text in the dim style.
func (p *Printer) Dim(text string) string {
	return p.styles.Dim.Render(text)
}

func (p *Printer) writeJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteJSON encodes any data as JSON and writes it.
// Use this for outputting structs or other types that aren't maps.
func (p *Printer) WriteJSON(data any) error {
	return p.writeJSON(data)
}

// ErrorJSON returns JSON-formatted error bytes.
// Format: {"error": "message", "code": N}
func ErrorJSON(message string, code int) []byte {
	data := map[string]any{
		"error": message,
		"code":  code,
	}
	result, _ := json.Marshal(data)
	return result
}

// mustWrite panics if a write operation fails.
// Writes go to stdout/stderr or buffers, which should never fail.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Table renders a simple table with column alignment.
// Headers are rendered in Bold style. Column widths are auto-calculated.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := calcColumnWidths(headers, rows)
	for i, h := range headers {
		if i > 0 {
			mustWrite(fmt.Fprint(p.w, "  "))
		}
		mustWrite(fmt.Fprint(p.w, p.styles.Bold.Render(padRight(h, widths[i]))))
	}
	mustWrite(fmt.Fprintln(p.w))

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				mustWrite(fmt.Fprint(p.w, "  "))
			}
			mustWrite(fmt.Fprint(p.w, padRight(cell, widths[i])))
		}
		mustWrite(fmt.Fprintln(p.w))
	}
}

func calcColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// Section renders a section header with underline.
// Adds a blank line before the header.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.Title.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.Muted.Render(strings.Repeat("─", len(title)))))
}

// KeyValue renders a key-value pair with styles applied.
// Format: "Key: Value"
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
