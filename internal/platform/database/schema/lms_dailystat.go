package schema

// DailyStatTable represents the 'daily_stats' table
type DailyStatTable struct {
	Table     string
	Day       string
	Visits    string
	UpdatedAt string
}

// DailyStat is the schema definition for daily_stats
var DailyStat = DailyStatTable{
	Table:     "daily_stats",
	Day:       "day",
	Visits:    "visits",
	UpdatedAt: "updated_at",
}

func (t DailyStatTable) Columns() []string {
	return []string{t.Day, t.Visits, t.UpdatedAt}
}
