package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/nwalden/planloom/internal/plan"
	"github.com/nwalden/planloom/internal/stats"
)

// reportData feeds the HTML template.
type reportData struct {
	Title       string
	GeneratedAt string
	Mermaid     string
	Stats       *stats.Stats
	Sections    []sectionDetail
}

type sectionDetail struct {
	Name  string
	Tasks []taskDetail
}

type taskDetail struct {
	Name      string
	Status    string
	Milestone bool
	Dates     string
}

// HTML renders a standalone report page: summary cards, the gantt
// chart (rendered client-side by mermaid.js), and per-section task
// lists with status badges.
func HTML(p *plan.Plan, st *stats.Stats, now time.Time) ([]byte, error) {
	layout := p.Layout()
	data := reportData{
		Title:       p.Title,
		GeneratedAt: now.Format("2006-01-02"),
		Mermaid:     Mermaid(p),
		Stats:       st,
	}
	for _, section := range sectionOrder(p) {
		detail := sectionDetail{Name: section}
		if detail.Name == "" {
			detail.Name = "Tasks"
		}
		for _, task := range p.Tasks {
			if task.Section != section {
				continue
			}
			td := taskDetail{
				Name:      task.Name,
				Milestone: task.Milestone,
				Dates:     formatDates(task, layout),
			}
			if len(task.Statuses) > 0 {
				td.Status = string(task.Statuses[0])
			}
			detail.Tasks = append(detail.Tasks, td)
		}
		data.Sections = append(data.Sections, detail)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDates(task *plan.Task, layout string) string {
	switch {
	case task.Start.IsZero():
		return ""
	case task.Milestone || task.End.Equal(task.Start):
		return task.Start.Format(layout)
	case task.End.IsZero():
		return task.Start.Format(layout)
	default:
		return task.Start.Format(layout) + " – " + task.End.Format(layout)
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - Schedule Report</title>
<script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
.container { max-width: 1200px; margin: 0 auto; background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); overflow: hidden; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; }
.header h1 { margin: 0; font-size: 2.5rem; font-weight: 300; }
.header p { margin: 10px 0 0 0; opacity: 0.9; }
.content { padding: 30px; }
.statistics { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 20px; margin-bottom: 30px; }
.stat-card { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); border-left: 4px solid #667eea; }
.stat-card h3 { margin: 0 0 10px 0; color: #333; font-size: 1.1rem; }
.stat-value { font-size: 2rem; font-weight: bold; color: #667eea; }
.stat-unit { font-size: 0.9rem; color: #666; margin-left: 5px; }
.progress-bar { width: 100%; height: 8px; background: #e0e0e0; border-radius: 4px; margin-top: 10px; overflow: hidden; }
.progress-fill { height: 100%; background: linear-gradient(90deg, #667eea, #764ba2); }
.gantt-container { background: white; border-radius: 8px; padding: 20px; margin-bottom: 30px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.task-details { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.task-section h4 { color: #333; border-bottom: 2px solid #667eea; padding-bottom: 5px; }
.task-list { list-style: none; padding: 0; }
.task-item { padding: 8px 0; border-bottom: 1px solid #eee; display: flex; justify-content: space-between; align-items: center; }
.task-item:last-child { border-bottom: none; }
.task-dates { color: #666; font-size: 0.85rem; margin-left: 10px; }
.task-status { padding: 4px 8px; border-radius: 12px; font-size: 0.8rem; font-weight: bold; }
.status-done { background: #d4edda; color: #155724; }
.status-active { background: #cce5ff; color: #004085; }
.status-crit { background: #fff3cd; color: #856404; }
.status-default { background: #e9ecef; color: #495057; }
.footer { text-align: center; padding: 20px; color: #666; background: #f8f9fa; font-size: 0.9rem; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>{{.Title}}</h1>
<p>Schedule report generated {{.GeneratedAt}}</p>
</div>
<div class="content">
{{- if .Stats}}
<div class="statistics">
<div class="stat-card"><h3>Tasks</h3><div class="stat-value">{{.Stats.TotalTasks}}</div></div>
<div class="stat-card"><h3>Progress</h3><div class="stat-value">{{printf "%.1f" .Stats.CompletionRate}}<span class="stat-unit">%</span></div>
<div class="progress-bar"><div class="progress-fill" style="width: {{printf "%.1f" .Stats.CompletionRate}}%"></div></div></div>
<div class="stat-card"><h3>Duration</h3><div class="stat-value">{{.Stats.TotalDuration}}<span class="stat-unit">working days</span></div></div>
<div class="stat-card"><h3>Milestones</h3><div class="stat-value">{{.Stats.Milestones}}</div></div>
<div class="stat-card"><h3>Active</h3><div class="stat-value">{{.Stats.ActiveTasks}}</div></div>
<div class="stat-card"><h3>Critical Path</h3><div class="stat-value">{{.Stats.CriticalLength}}<span class="stat-unit">tasks</span></div></div>
</div>
{{- end}}
<div class="gantt-container">
<div class="mermaid">
{{.Mermaid}}
</div>
</div>
<div class="task-details">
<h3>Task Details</h3>
{{- range .Sections}}
<div class="task-section">
<h4>{{.Name}}</h4>
<ul class="task-list">
{{- range .Tasks}}
<li class="task-item">
<span>{{.Name}}{{if .Milestone}} &#127919;{{end}}<span class="task-dates">{{.Dates}}</span></span>
<span class="task-status status-{{if .Status}}{{.Status}}{{else}}default{{end}}">{{if .Status}}{{.Status}}{{else}}pending{{end}}</span>
</li>
{{- end}}
</ul>
</div>
{{- end}}
</div>
</div>
<div class="footer"><p>Generated by planloom</p></div>
</div>
<script>
mermaid.initialize({
  startOnLoad: true,
  theme: 'default',
  gantt: { fontSize: 12, gridLineStartPadding: 350, bottomPadding: 50, rightPadding: 75 }
});
</script>
</body>
</html>
`))
