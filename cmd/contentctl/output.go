package main

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// printer renders plain tab separated tables, optionally with coloured headers.
type printer struct {
	out     io.Writer
	colours bool
}

func (p printer) table(header []string, rows [][]string) {
	if p.colours {
		styled := make([]string, len(header))
		for i, h := range header {
			styled[i] = color.New(color.FgCyan, color.OpBold).Render(h)
		}
		header = styled
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(!p.colours)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.AppendBulk(rows)
	table.Render()
}

func (p printer) status(ok bool, yes, no string) string {
	if !p.colours {
		if ok {
			return yes
		}
		return no
	}
	if ok {
		return color.FgGreen.Render(yes)
	}
	return color.FgRed.Render(no)
}

func (p printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
