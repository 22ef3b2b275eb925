package summary

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderMonthlyChart draws monthly totals as a bar chart. It returns nil
// when there is nothing to draw.
func RenderMonthlyChart(totals []MonthlyTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, len(totals))
	highest := 0.0
	for i, t := range totals {
		value := t.Total.InexactFloat64()
		if value > highest {
			highest = value
		}
		bars[i] = chart.Value{
			Label: t.Month,
			Value: value,
		}
	}

	graph := chart.BarChart{
		Title:    "Spending by month",
		Width:    1024,
		Height:   512,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		// go-chart cannot derive a range from a single bar.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: highest * 1.1},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render monthly chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// RenderCategoryChart draws category totals as a pie chart. It returns nil
// when there is nothing to draw.
func RenderCategoryChart(totals []CategoryTotal) ([]byte, error) {
	values := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		if !t.Total.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s", t.Category, t.Total.StringFixed(2)),
			Value: t.Total.InexactFloat64(),
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  "Spending by category",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category chart: %w", err)
	}
	return buffer.Bytes(), nil
}
