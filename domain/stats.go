package domain

// Stats summarizes all todos owned by a single user.
type Stats struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completed"`
	HighPriority int64 `json:"highPriority"`
	Overdue      int64 `json:"overdue"`
}

// CategoryStat is one entry of the per-category breakdown.
type CategoryStat struct {
	Category  string `json:"category"`
	Count     int64  `json:"count"`
	Completed int64  `json:"completed"`
}

// StatsReport is the full aggregate returned by the stats endpoint.
type StatsReport struct {
	Overall    Stats          `json:"overall"`
	ByCategory []CategoryStat `json:"byCategory"`
}
