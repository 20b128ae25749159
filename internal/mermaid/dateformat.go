package mermaid

// dateLayouts maps mermaid dateFormat tokens to Go time layouts.
var dateLayouts = map[string]string{
	"YYYY-MM-DD": "2006-01-02",
	"YYYY/MM/DD": "2006/01/02",
	"DD-MM-YYYY": "02-01-2006",
	"MM-DD-YYYY": "01-02-2006",
	"YYYY-MM":    "2006-01",
	"YYYY/MM":    "2006/01",
	"MM-YYYY":    "01-2006",
	"MM/YYYY":    "01/2006",
}

// DefaultLayout is the date layout assumed when a gantt block declares no
// dateFormat, or declares one we do not recognize.
const DefaultLayout = "2006-01-02"

// Layout converts a mermaid dateFormat declaration to a Go time layout,
// falling back to DefaultLayout for unrecognized formats.
func Layout(mermaidFormat string) string {
	if layout, ok := dateLayouts[mermaidFormat]; ok {
		return layout
	}
	return DefaultLayout
}

// fallbackLayouts are tried in order when a date string does not match
// the declared layout. Mirrors the tolerant parsing of hand-authored
// gantt files where individual dates drift from the declared format.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
}
