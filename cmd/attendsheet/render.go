package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ukaji3/attendsheet-go/internal/output"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/report"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	valueStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// emit prints v as JSON when --json is set, otherwise runs text.
func emit(w io.Writer, v any, text func(io.Writer)) error {
	if jsonOut {
		return output.WriteJSON(w, v, pretty)
	}
	text(w)
	return nil
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func weekTitle(ref report.WeekRef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Неделя %d", ref.Global)
	if ref.Local > 0 {
		fmt.Fprintf(&b, " (%d-я в месяце)", ref.Local)
	}
	if ref.Label != "" {
		b.WriteString(" " + ref.Label)
	}
	return b.String()
}

func renderStatus(w io.Writer, st attendsheet.LoadStatus) {
	fmt.Fprintln(w, titleStyle.Render("Таблица загружена"))
	fmt.Fprintln(w, field("Лист", st.Sheet))
	fmt.Fprintln(w, field("Строка шапки", strconv.Itoa(st.HeaderRow)))
	idCol := "не найден"
	if st.IDColumn >= 0 {
		idCol = strconv.Itoa(st.IDColumn)
	}
	fmt.Fprintln(w, field("Столбец ID", idCol))
	fmt.Fprintln(w, field("Недель", strconv.Itoa(st.Weeks)))
	fmt.Fprintln(w, field("Сотрудников", strconv.Itoa(st.Rows)))
	fmt.Fprintln(w, field("Даты", fmt.Sprintf("%d из %d", st.Resolved, st.Columns)))
	fmt.Fprintln(w, mutedStyle.Render("load "+st.ID.String()))
}

func renderWeeks(w io.Writer, weeks []attendsheet.WeekSummary) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Недели (%d)", len(weeks))))
	for _, wk := range weeks {
		label := wk.Label
		if label == "" {
			label = mutedStyle.Render("даты не определены")
		}
		fmt.Fprintf(w, "%s %s\n", valueStyle.Render(fmt.Sprintf("%3d", wk.Number)), label)
	}
}

func renderMonthWeeks(w io.Writer, weeks []report.WeekRef) {
	fmt.Fprintln(w, titleStyle.Render("Недели текущего месяца"))
	if len(weeks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("нет недель"))
	}
	for _, ref := range weeks {
		fmt.Fprintln(w, weekTitle(ref))
	}
}

func renderDays(w io.Writer, d report.Days) {
	fmt.Fprintln(w, titleStyle.Render(weekTitle(d.Week)))
	fmt.Fprintln(w, field(d.Person.Name, formatDays(d.Days)+" дн."))
}

func renderSalary(w io.Writer, s report.Salary) {
	fmt.Fprintln(w, titleStyle.Render(weekTitle(s.Week)))
	fmt.Fprintln(w, field(s.Person.Name,
		fmt.Sprintf("%s дн × %s = %s ₽", formatDays(s.Days.Days), s.Pay.Rate.String(), s.Pay.Amount.StringFixed(2))))
}
