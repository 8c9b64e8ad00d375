package surfforecast

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"surfcast/internal/models"
	"surfcast/internal/surf"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorMuted   = lipgloss.Color("#6C757D")
	colorDanger  = lipgloss.Color("#FF6B6B")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorDanger)

	gradeColors = map[surf.Grade]lipgloss.Color{
		surf.GradeS: lipgloss.Color("#C77DFF"),
		surf.GradeA: lipgloss.Color("#6BCF7F"),
		surf.GradeB: lipgloss.Color("#A3D977"),
		surf.GradeC: lipgloss.Color("#FFD93D"),
		surf.GradeD: colorMuted,
	}
)

const gradeColumn = 1

// RenderTable formats a snapshot for the terminal: one row per point, then any failures.
func RenderTable(snap *models.ForecastSnapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Surf forecast %s", snap.UpdatedAt.Format("2006-01-02 15:04"))))
	b.WriteString("\n")

	rows := make([][]string, 0, len(snap.Forecasts))
	grades := make([]surf.Grade, 0, len(snap.Forecasts))
	for _, f := range snap.Forecasts {
		best := ""
		if f.IsBestSwell {
			best = "*"
		}
		rows = append(rows, []string{
			f.Beach,
			string(f.Quality),
			fmt.Sprintf("%s (%.1fm)", f.Height, f.HeightMeters),
			fmt.Sprintf("%s%s %.0fs", f.WaveDirectionStr, best, f.Period),
			fmt.Sprintf("%s %.1fm/s", f.WindDirection, f.WindSpeed),
			fmt.Sprintf("%+.2fm", f.Tide),
			string(f.PeakGrade()),
		})
		grades = append(grades, f.Quality)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("POINT", "NOW", "SIZE", "SWELL", "WIND", "TIDE", "WEEK").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == gradeColumn && row >= 0 && row < len(grades) {
				return cellStyle.Bold(true).Foreground(gradeColors[grades[row]])
			}
			return cellStyle
		})
	b.WriteString(t.String())
	b.WriteString("\n")

	for _, f := range snap.Failures {
		b.WriteString(errorStyle.Render(fmt.Sprintf("! %s: %s", f.Name, f.Error)))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("* best swell direction for the point"))
	b.WriteString("\n")
	return b.String()
}
