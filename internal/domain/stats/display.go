package stats

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown for an undefined aggregate.
const NotAvailable = "n/a"

// Display holds the headline metrics as dashboard strings.
type Display struct {
	AvgMarketValue string `json:"avg_market_value"`
	AvgWeeklyWage  string `json:"avg_weekly_wage"`
	AvgAge         string `json:"avg_age"`
	TotalTeamValue string `json:"total_team_value"`
}

func printer() *message.Printer { return message.NewPrinter(language.English) }

// Format renders s with thousands separators. Money is shown in millions
// except the weekly wage, which is shown in euros.
func Format(s Summary) Display {
	p := printer()
	return Display{
		AvgMarketValue: millions(p, s.AvgMarketValue),
		AvgWeeklyWage:  whole(p, s.AvgWeeklyWage),
		AvgAge:         oneDecimal(p, s.AvgAge),
		TotalTeamValue: millions(p, s.TotalTeamValue),
	}
}

// FormatEUR renders an amount in whole euros with thousands separators.
func FormatEUR(v float64) string {
	return printer().Sprintf("%.0f", v)
}

func millions(p *message.Printer, v Value) string {
	if !v.Valid {
		return NotAvailable
	}
	return p.Sprintf("%.2fM", v.Value/1e6)
}

func whole(p *message.Printer, v Value) string {
	if !v.Valid {
		return NotAvailable
	}
	return p.Sprintf("%.0f", v.Value)
}

func oneDecimal(p *message.Printer, v Value) string {
	if !v.Valid {
		return NotAvailable
	}
	return p.Sprintf("%.1f", v.Value)
}
