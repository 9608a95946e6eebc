package render

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/forPelevin/timecut/internal/domain/timestamps"
	"github.com/forPelevin/timecut/internal/types"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func sectionsTable(secs []types.Section) string {
	rows := make([][]string, 0, len(secs))
	for i, s := range secs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			timestamps.Format(s.StartSeconds),
			timestamps.Format(s.EndSeconds),
			s.Title,
			s.Source.String(),
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Title", "Source"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func clipsTable(clips []types.ClipCandidate) string {
	rows := make([][]string, 0, len(clips))
	for _, c := range clips {
		rows = append(rows, []string{
			timestamps.Format(c.StartSeconds),
			timestamps.Format(c.EndSeconds),
			confidence(c.ConfidenceScore),
			c.Label,
		})
	}
	return renderTable(
		[]string{"Start", "End", "Confidence", "Label"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
	)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
