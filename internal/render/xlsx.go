package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nwalden/planloom/internal/plan"
)

const xlsxSheet = "Gantt"

var xlsxHeaders = []string{"Task", "ID", "Status", "Start", "End", "Duration (days)", "Depends On"}

// XLSX renders the scheduled plan as a spreadsheet: one row per task
// under a styled header, milestone rows highlighted, and columns sized
// to their widest value.
func XLSX(p *plan.Plan) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("rendering spreadsheet: %w", err)
	}

	widths := make([]int, len(xlsxHeaders))
	set := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if n := len(fmt.Sprint(value)); n > widths[col-1] {
			widths[col-1] = n
		}
		return f.SetCellValue(xlsxSheet, cell, value)
	}

	for i, h := range xlsxHeaders {
		if err := set(i+1, 1, h); err != nil {
			return nil, fmt.Errorf("rendering spreadsheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("rendering spreadsheet: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("rendering spreadsheet: %w", err)
	}

	milestoneStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FF0000"},
	})
	if err != nil {
		return nil, fmt.Errorf("rendering spreadsheet: %w", err)
	}

	layout := p.Layout()
	for i, task := range p.Tasks {
		row := i + 2
		values := []any{
			task.Name,
			task.ID,
			joinStatuses(task.Statuses),
			xlsxDate(task.Start, layout),
			xlsxDate(task.End, layout),
			xlsxDuration(task),
			strings.Join(task.Dependencies, ", "),
		}
		for col, v := range values {
			if err := set(col+1, row, v); err != nil {
				return nil, fmt.Errorf("rendering spreadsheet: %w", err)
			}
		}
		if task.Milestone {
			for _, col := range []string{"A", "D", "E"} {
				cell := fmt.Sprintf("%s%d", col, row)
				if err := f.SetCellStyle(xlsxSheet, cell, cell, milestoneStyle); err != nil {
					return nil, fmt.Errorf("rendering spreadsheet: %w", err)
				}
			}
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("rendering spreadsheet: %w", err)
		}
		if err := f.SetColWidth(xlsxSheet, name, name, float64(w+2)*1.2); err != nil {
			return nil, fmt.Errorf("rendering spreadsheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func joinStatuses(statuses []plan.Status) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func xlsxDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func xlsxDuration(task *plan.Task) any {
	if !task.HasDuration {
		return ""
	}
	return task.Duration
}
