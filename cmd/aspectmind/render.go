package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	domanalytics "github.com/kailas-cloud/aspectmind/internal/domain/analytics"
	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	domcmp "github.com/kailas-cloud/aspectmind/internal/domain/comparison"
	"github.com/kailas-cloud/aspectmind/internal/domain/search/result"
	feedbackuc "github.com/kailas-cloud/aspectmind/internal/usecase/feedback"
)

var (
	positiveColor = lipgloss.Color("#8BC34A")
	negativeColor = lipgloss.Color("#e53935")
	neutralColor  = lipgloss.Color("#FFC107")
	mutedColor    = lipgloss.Color("#6b7785")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	winnerStyle = lipgloss.NewStyle().Bold(true).Foreground(positiveColor)
)

func sentimentStyle(s aspect.Sentiment) lipgloss.Style {
	switch s {
	case aspect.Positive:
		return lipgloss.NewStyle().Foreground(positiveColor)
	case aspect.Negative:
		return lipgloss.NewStyle().Foreground(negativeColor)
	case aspect.Neutral:
		return lipgloss.NewStyle().Foreground(neutralColor)
	default:
		return mutedStyle
	}
}

func chip(sig aspect.Signal) string {
	return sentimentStyle(sig.Sentiment).Render(fmt.Sprintf("%s %s %.0f%%", sig.Aspect, sig.Sentiment, sig.Confidence*100))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderSignals(w io.Writer, set aspect.Set) {
	if set.Len() == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no aspects detected"))
		return
	}
	chips := make([]string, 0, set.Len())
	for _, sig := range set.All() {
		chips = append(chips, chip(sig))
	}
	fmt.Fprintln(w, strings.Join(chips, "  "))
}

func renderSearch(w io.Writer, res result.Result) {
	overall := res.Overall()
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Overall:"),
		sentimentStyle(overall.Label).Render(fmt.Sprintf("%s (%.0f%%)", overall.Label, overall.Confidence*100)))
	fmt.Fprint(w, titleStyle.Render("Query aspects: "))
	renderSignals(w, res.QuerySignals())

	if res.Len() == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no matching products"))
		return
	}

	t := newTable("#", "ID", "Name", "Category", "Match", "Strengths", "Weaknesses")
	for i, p := range res.Products() {
		t.Row(
			strconv.Itoa(i+1),
			string(p.ID()),
			p.Name(),
			p.Category(),
			fmt.Sprintf("%.0f%%", p.MatchScore()*100),
			scoredNames(p.TopPositive()),
			scoredNames(p.TopNegative()),
		)
	}
	fmt.Fprintln(w, t.String())
	if cats := res.Categories(); len(cats) > 0 {
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Categories:"), strings.Join(cats, ", "))
	}
}

func scoredNames(list []aspect.Scored) string {
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func renderComparison(w io.Writer, report domcmp.Report) {
	products := report.Products()

	headers := make([]string, 0, len(products)+1)
	headers = append(headers, "Aspect")
	for i, p := range products {
		name := p.Name
		if report.IsWinner(i) {
			name = "* " + name
		}
		headers = append(headers, name)
	}

	t := newTable(headers...)
	for _, row := range report.Matrix() {
		cells := make([]string, 0, len(products)+1)
		cells = append(cells, row.Aspect)
		for i := range products {
			c := row.Cell(i)
			if !c.Available() {
				cells = append(cells, mutedStyle.Render(string(aspect.NotAvailable)))
				continue
			}
			cells = append(cells, sentimentStyle(c.Sentiment).Render(fmt.Sprintf("%s %.0f%%", c.Sentiment, c.Confidence*100)))
		}
		t.Row(cells...)
	}

	summary := []string{"Net score"}
	share := []string{"Positive share"}
	for _, p := range products {
		summary = append(summary, strconv.Itoa(p.NetScore()))
		share = append(share, fmt.Sprintf("%d%%", p.PositiveShare()))
	}
	t.Row(summary...)
	t.Row(share...)
	fmt.Fprintln(w, t.String())

	for _, i := range report.Winners() {
		p := products[i]
		fmt.Fprintf(w, "%s %s  %s\n", winnerStyle.Render("Best overall:"), p.Name,
			mutedStyle.Render(scoredNames(p.TopStrengths(5))))
	}
}

func renderAnalytics(w io.Writer, snap domanalytics.Snapshot) {
	fmt.Fprintf(w, "%s %d products, %d aspects, %d reviews\n", titleStyle.Render("Dataset:"),
		snap.TotalProducts, snap.TotalAspects, snap.TotalReviews)

	d := snap.Distribution
	fmt.Fprintf(w, "%s %s %s %s\n", titleStyle.Render("Sentiment:"),
		sentimentStyle(aspect.Positive).Render(fmt.Sprintf("%d positive", d.Positive)),
		sentimentStyle(aspect.Negative).Render(fmt.Sprintf("%d negative", d.Negative)),
		sentimentStyle(aspect.Neutral).Render(fmt.Sprintf("%d neutral", d.Neutral)))

	if len(snap.TopAspects) > 0 {
		t := newTable("Aspect", "Positive", "Negative", "Neutral", "Total")
		for _, a := range snap.TopAspects {
			t.Row(a.Name, strconv.Itoa(a.Positive), strconv.Itoa(a.Negative), strconv.Itoa(a.Neutral), strconv.Itoa(a.Total))
		}
		fmt.Fprintln(w, t.String())
	}
	if len(snap.TopCategories) > 0 {
		t := newTable("Category", "Products", "Positive", "Negative")
		for _, c := range snap.TopCategories {
			t.Row(c.Name, strconv.Itoa(c.Count), strconv.Itoa(c.Positive), strconv.Itoa(c.Negative))
		}
		fmt.Fprintln(w, t.String())
	}
}

func renderReceipt(w io.Writer, rc feedbackuc.Receipt) {
	if rc.Message != "" {
		fmt.Fprintln(w, rc.Message)
	}
	renderSignals(w, rc.Analysis)
}
