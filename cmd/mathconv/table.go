package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/randalmurphal/mathconv/pkg/mathconv"
	"github.com/randalmurphal/mathconv/pkg/mathconv/config"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Case outcomes.
const (
	statusPass  = "pass"
	statusFail  = "FAIL"
	statusError = "ERROR"
)

// batchRow is the outcome of one batch case.
type batchRow struct {
	label   string
	formula string
	result  string
	status  string
}

func runBatch(ctx context.Context, conv *mathconv.Converter, cases []config.Case, stdout, stderr io.Writer) int {
	rows := make([]batchRow, 0, len(cases))
	failed := 0
	for _, c := range cases {
		row := evaluateCase(ctx, conv, c)
		if row.status != statusPass {
			failed++
		}
		rows = append(rows, row)
	}

	width := columnWidth(stdout)
	table := tablewriter.NewWriter(stdout)
	table.Header("Name", "Formula", "Result", "Status")
	for _, r := range rows {
		if err := table.Append([]string{
			truncate(r.label, width),
			truncate(r.formula, width),
			truncate(r.result, width),
			r.status,
		}); err != nil {
			fmt.Fprintln(stderr, "mathconv:", err)
			return exitRuntime
		}
	}
	if err := table.Render(); err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitRuntime
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d cases failed\n", failed, len(cases))
		return exitFailed
	}
	return exitOK
}

// evaluateCase runs one case and checks its expectation.
func evaluateCase(ctx context.Context, conv *mathconv.Converter, c config.Case) batchRow {
	row := batchRow{label: c.Label(), formula: c.Formula}

	var (
		v   value.Value
		err error
	)
	if c.Library != "" {
		row.formula = "@" + c.Library
		if conv.Library() == nil {
			err = mathconv.ErrNoLibrary
		} else {
			v, err = conv.ConvertNamed(ctx, c.Library, c.Inputs...)
		}
	} else {
		v, err = conv.Convert(ctx, c.Formula, c.Inputs...)
	}

	switch {
	case err != nil:
		row.result = err.Error()
		row.status = statusError
		if c.Error != "" && strings.Contains(err.Error(), c.Error) {
			row.status = statusPass
		}
	case c.Error != "":
		row.result = value.Display(v, conv.Culture())
		row.status = statusFail
	default:
		row.result = value.Display(v, conv.Culture())
		row.status = statusPass
		if c.Expect != nil && *c.Expect != row.result {
			row.status = statusFail
			row.result += " (want " + strconv.Quote(*c.Expect) + ")"
		}
	}
	return row
}

// columnWidth returns the widest a text column may be on the terminal
// behind w. Non-terminals are not limited.
func columnWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 40 {
		return 0
	}
	// Three text columns plus the status column and borders.
	return (width - 20) / 3
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

func runList(conv *mathconv.Converter, stdout, stderr io.Writer) int {
	infos, err := conv.Library().List()
	if err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitRuntime
	}

	table := tablewriter.NewWriter(stdout)
	table.Header("Name", "Revision", "Updated", "Formula")
	width := columnWidth(stdout)
	for _, info := range infos {
		source, err := conv.Library().Load(info.Name)
		if err != nil {
			fmt.Fprintln(stderr, "mathconv:", err)
			return exitRuntime
		}
		if err := table.Append([]string{
			info.Name,
			strconv.Itoa(info.Revision),
			info.Updated.Format("2006-01-02 15:04:05"),
			truncate(source, width),
		}); err != nil {
			fmt.Fprintln(stderr, "mathconv:", err)
			return exitRuntime
		}
	}
	if err := table.Render(); err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitRuntime
	}
	return exitOK
}
