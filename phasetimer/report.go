package phasetimer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

// Print writes a table with the breakdown of one snapshot to w.
func (s Snapshot) Print(w io.Writer) {
	headerFmt := color.New(color.FgYellow, color.Underline).SprintfFunc()

	cols := []interface{}{"section", "wall", "%total"}
	if s.Level == LevelFull {
		cols = append(cols, "cpu", "%cpu")
	}
	tbl := table.New(cols...).WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt)

	for _, r := range s.Rows {
		row := []interface{}{r.Name, seconds(r.Wall), pct(r.Percent)}
		if s.Level == LevelFull {
			row = append(row, seconds(r.CPU), pct(percent(r.CPU, r.Wall)))
		}
		tbl.AddRow(row...)
	}

	color.New(color.FgYellow).Add(color.Bold).Fprintf(w,
		"\nRank %d loop time %s\n", s.Rank, seconds(s.Loop))
	tbl.Print()
}

// Print writes the cross-process breakdown table to w.
func (s *Summary) Print(w io.Writer) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()

	tbl := table.New(
		"section",
		"min time",
		"avg time",
		"max time",
		"%varavg",
		"%total",
	).WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt)

	var attributed float64
	for _, r := range s.Rows {
		attributed += r.Avg
		tbl.AddRow(
			r.Name,
			seconds(r.Min),
			seconds(r.Avg),
			seconds(r.Max),
			pct(r.VarAvg),
			pct(r.Percent),
		)
	}
	other := s.Loop - attributed
	tbl.AddRow("other", "", seconds(other), "", "", pct(percent(other, s.Loop)))

	color.New(color.FgGreen).Add(color.Bold).Fprintf(w,
		"\nLoop time of %s on %d procs\n", seconds(s.Loop), s.Procs)
	switch {
	case s.HasCPU && s.SharedCPU:
		fmt.Fprintf(w, "%.1f%% CPU use (process-wide, shared by %d ranks)\n", s.CPUUse, s.Procs)
	case s.HasCPU:
		fmt.Fprintf(w, "%.1f%% CPU use\n", s.CPUUse)
	}
	tbl.Print()
}

func seconds(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
