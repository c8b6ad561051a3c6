package bench

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#04B575")
	colorRed    = lipgloss.Color("#FF5F87")
	colorCyan   = lipgloss.Color("#00AFD7")
	colorYellow = lipgloss.Color("#D7AF00")
	colorGray   = lipgloss.Color("#888888")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorGray)
	passStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	bestStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	sizeStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	timeStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	colCodec  = 13
	colStatus = 14
	colNum    = 12
)

func cell(style lipgloss.Style, width int, s string) string {
	return style.Width(width).Render(s)
}

func row(cells ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func statusCell(s Status) string {
	if s == StatusPass {
		return cell(passStyle, colStatus, string(s))
	}
	return cell(failStyle, colStatus, string(s))
}

// RenderText renders a report as styled tables: per-codec results, the size
// ranking, the time ranking, and the details of every failure.
func RenderText(r *Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Serialization comparison"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("run %s  items %d  fingerprint %s", r.RunID, r.Items, r.Fingerprint)))
	b.WriteString("\n\n")

	b.WriteString(row(
		cell(headerStyle, colCodec, "Codec"),
		cell(headerStyle, colStatus, "Status"),
		cell(headerStyle, colNum, "Bytes"),
		cell(headerStyle, colNum, "Encode"),
		cell(headerStyle, colNum, "Decode"),
	))
	b.WriteString("\n")
	for _, res := range r.Results {
		b.WriteString(row(
			cell(lipgloss.NewStyle(), colCodec, res.Codec),
			statusCell(res.Status),
			cell(sizeStyle, colNum, sizeText(res)),
			cell(timeStyle, colNum, res.EncodeTime.String()),
			cell(timeStyle, colNum, res.DecodeTime.String()),
		))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Size ranking (bytes)"))
	b.WriteString("\n")
	writeRanking(&b, r.SizeRanking(), sizeStyle, sizeText)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Time ranking (encode)"))
	b.WriteString("\n")
	writeRanking(&b, r.TimeRanking(), timeStyle, func(res CodecResult) string {
		if !res.Encoded() {
			return "-"
		}
		return res.EncodeTime.String()
	})

	if failures := r.Failures(); len(failures) > 0 {
		b.WriteString("\n")
		b.WriteString(failStyle.Render(fmt.Sprintf("%d of %d codecs failed", len(failures), len(r.Results))))
		b.WriteString("\n")
		for _, res := range failures {
			fmt.Fprintf(&b, "  %s: %s", res.Codec, res.Status)
			if res.Error != "" {
				fmt.Fprintf(&b, ": %s", res.Error)
			}
			b.WriteString("\n")
			for i, e := range res.Diff {
				fmt.Fprintf(&b, "    #%d: %s\n", i+1, e)
			}
		}
	} else {
		b.WriteString("\n")
		b.WriteString(passStyle.Render(fmt.Sprintf("All %d codecs recreated the store exactly.", len(r.Results))))
		b.WriteString("\n")
	}

	return b.String()
}

func writeRanking(b *strings.Builder, ranked []CodecResult, style lipgloss.Style, value func(CodecResult) string) {
	for i, res := range ranked {
		vs := style
		if i == 0 && res.Encoded() {
			vs = bestStyle
		}
		b.WriteString(row(
			cell(dimStyle, 4, strconv.Itoa(i+1)+"."),
			cell(lipgloss.NewStyle(), colCodec, res.Codec),
			cell(vs, colNum, value(res)),
		))
		b.WriteString("\n")
	}
}

func sizeText(res CodecResult) string {
	if !res.Encoded() {
		return "-"
	}
	return strconv.Itoa(res.Bytes)
}

// RenderJSON renders a report as indented JSON.
func RenderJSON(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return append(data, '\n'), nil
}
