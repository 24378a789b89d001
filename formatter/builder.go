package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	tt "github.com/gnoswap-labs/boolex/internal/types"
)

// stdin is shown in place of a file name for expressions read from
// arguments or standard input.
const stdin = "<input>"

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	okStyle         = color.New(color.FgGreen, color.Bold)
	reasonStyle     = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
	noStyle         = color.New(color.FgWhite)
)

const reportTemplate = `{{header .Failed .Label .Padding .Filename .Line}}
{{snippet .Expression .Line .Width .Padding}}
{{- range .Details}}
{{detail . $.Padding}}
{{- end}}
{{- if .Note}}
{{note .Note}}
{{- end}}

`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"header":  header,
	"snippet": snippet,
	"detail":  detail,
	"note":    note,
}).Parse(reportTemplate))

type ReportData struct {
	Failed     bool
	Label      string
	Filename   string
	Line       int
	Width      int
	Padding    string
	Expression string
	Details    []Detail
	Note       string
}

// Detail is one "= ..." line under the snippet.
type Detail struct {
	Text  string
	Error bool
}

// FormatReports renders reports into a human-readable string, one block
// per expression.
func FormatReports(reports []tt.Report) string {
	var builder strings.Builder
	for _, r := range reports {
		builder.WriteString(buildReport(r))
	}
	return builder.String()
}

func buildReport(r tt.Report) string {
	width := len(fmt.Sprintf("%d", r.Line))
	data := ReportData{
		Failed:     r.Failed(),
		Label:      label(r),
		Filename:   r.Filename,
		Line:       r.Line,
		Width:      width,
		Padding:    strings.Repeat(" ", width+1),
		Expression: r.Expression,
		Details:    details(r),
		Note:       r.Note,
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting report: %v", err)
	}
	return buf.String()
}

func label(r tt.Report) string {
	switch {
	case !r.Valid && r.Reason != "":
		return r.Reason
	case !r.Valid:
		return "invalid"
	case r.Message != "":
		return "check-failed"
	default:
		return "valid"
	}
}

func details(r tt.Report) []Detail {
	var ds []Detail
	if r.Message != "" {
		ds = append(ds, Detail{Text: r.Message, Error: true})
	}
	if !r.Valid {
		return ds
	}
	if r.Minimized != "" {
		text := "minimized: " + r.Minimized
		if r.UsedPetrick {
			text += " (petrick)"
		}
		ds = append(ds, Detail{Text: text})
	}
	if r.Minterms > 0 {
		ds = append(ds, Detail{Text: fmt.Sprintf("minterms: %d", r.Minterms)})
	}
	if r.Verified {
		ds = append(ds, Detail{Text: "verified equivalent"})
	}
	return ds
}

// utils functions used in the text template

func header(failed bool, label, padding, filename string, line int) string {
	var endString string
	if failed {
		endString = errorStyle.Sprint("error: ")
	} else {
		endString = okStyle.Sprint("ok: ")
	}
	endString += reasonStyle.Sprintf("%s\n", label)

	if filename == "" {
		filename = stdin
	}
	location := filename
	if line > 0 {
		location = fmt.Sprintf("%s:%d", filename, line)
	}
	endString += lineStyle.Sprintf("%s--> ", padding[1:])
	endString += fileStyle.Sprint(location)
	return endString
}

func snippet(expression string, line, width int, padding string) string {
	lineNum := strings.Repeat(" ", width)
	if line > 0 {
		lineNum = fmt.Sprintf("%*d", width, line)
	}
	endString := lineStyle.Sprintf("%s|\n", padding)
	endString += lineStyle.Sprintf("%s | ", lineNum)
	endString += noStyle.Sprint(expression)
	return endString
}

func detail(d Detail, padding string) string {
	endString := lineStyle.Sprintf("%s= ", padding)
	if d.Error {
		return endString + messageStyle.Sprint(d.Text)
	}
	return endString + suggestionStyle.Sprint(d.Text)
}

func note(note string) string {
	return suggestionStyle.Sprint("Note: ") + lineStyle.Sprint(note)
}
