package ui

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
)

// FormatValue renders one result cell as text. NULLs render empty; floats
// drop the trailing zeros a straight %f would add.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// renderResultsHTML builds the striped-table fragment embedded in the /ask
// response. Cell values are escaped; the surrounding markup is ours.
func renderResultsHTML(rs *sheet.ResultSet) string {
	var b strings.Builder
	b.WriteString(`<table class="table table-striped">`)

	b.WriteString("<thead><tr>")
	for _, col := range rs.Columns {
		b.WriteString("<th>")
		b.WriteString(template.HTMLEscapeString(col))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead>")

	b.WriteString("<tbody>")
	for _, row := range rs.Rows {
		b.WriteString("<tr>")
		for _, col := range rs.Columns {
			b.WriteString("<td>")
			b.WriteString(template.HTMLEscapeString(FormatValue(row[col])))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	return b.String()
}
