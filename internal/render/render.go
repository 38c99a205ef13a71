// Package render gjør (kolonner, rader) om til ett ferdig dokument.
// Rendringen er ren og deterministisk: identisk input gir byte-identisk
// output, derfor finnes det ingen tidsstempler her.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/jonmartinstorm/harborsnusern/internal/columns"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
)

type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Document er det ferdige sammendraget, merket med formatet sitt.
type Document struct {
	Format  Format
	Content string
}

// Render bygger dokumentet. Radene rendres i input-rekkefølge; et tomt
// radsett gir en gyldig tabell med bare header.
func Render(format Format, cols []columns.Column, rows []models.Row) (Document, error) {
	var content string
	switch format {
	case FormatHTML:
		content = renderHTML(cols, rows)
	case FormatMarkdown:
		content = renderMarkdown(cols, rows)
	default:
		return Document{}, fmt.Errorf("ukjent format %q – må være 'html' eller 'markdown'", format)
	}
	return Document{Format: format, Content: content}, nil
}

func renderHTML(cols []columns.Column, rows []models.Row) string {
	lines := []string{
		"<!DOCTYPE html>",
		"<html lang='en'>",
		"<head>",
		"<meta charset='utf-8' />",
		"<title>Harbor Repository Summary</title>",
		"<style>",
		"body { font-family: Arial, sans-serif; margin: 2rem; background: #f9fafc; color: #172b4d; }",
		"h1 { margin-bottom: 0.25rem; }",
		"table { border-collapse: collapse; width: 100%; margin-top: 1rem; }",
		"th, td { border: 1px solid #dfe1e6; padding: 0.5rem 0.75rem; text-align: left; }",
		"th { background-color: #f4f5f7; }",
		"tbody tr:nth-child(even) { background-color: #f8f9fc; }",
		"</style>",
		"</head>",
		"<body>",
		"<h1>Harbor Repository Summary</h1>",
		fmt.Sprintf("<p>%d repositories.</p>", len(rows)),
		"<table>",
	}

	var header strings.Builder
	for _, col := range cols {
		header.WriteString("<th>" + html.EscapeString(col.Label) + "</th>")
	}
	lines = append(lines, "<thead><tr>"+header.String()+"</tr></thead>", "<tbody>")

	for _, row := range rows {
		var cells strings.Builder
		for _, col := range cols {
			cells.WriteString("<td>" + html.EscapeString(row[col.Key]) + "</td>")
		}
		lines = append(lines, "<tr>"+cells.String()+"</tr>")
	}

	lines = append(lines, "</tbody>", "</table>")
	if len(rows) == 0 {
		lines = append(lines, "<p>No repositories available.</p>")
	}
	lines = append(lines, "</body>", "</html>")

	return strings.Join(lines, "\n")
}

func renderMarkdown(cols []columns.Column, rows []models.Row) string {
	lines := []string{
		"# Harbor Repository Summary",
		"",
		fmt.Sprintf("%d repositories.", len(rows)),
		"",
	}

	headers := make([]string, 0, len(cols))
	separators := make([]string, 0, len(cols))
	for _, col := range cols {
		headers = append(headers, escapeMarkdown(col.Label))
		separators = append(separators, "---")
	}
	lines = append(lines,
		"| "+strings.Join(headers, " | ")+" |",
		"| "+strings.Join(separators, " | ")+" |",
	)

	for _, row := range rows {
		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, escapeMarkdown(row[col.Key]))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}

	if len(rows) == 0 {
		lines = append(lines, "", "_No repositories available._")
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// escapeMarkdown nøytraliserer tegn som ville ødelagt pipe-tabellen.
func escapeMarkdown(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "|", `\|`)
	value = strings.ReplaceAll(value, "`", "\\`")
	value = strings.ReplaceAll(value, "\n", "<br />")
	return value
}
