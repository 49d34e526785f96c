package service

import "context"

// staticStatsProvider serves fixed demo statistics. A real analytics
// backend slots in behind StatsProvider without touching the service.
type staticStatsProvider struct{}

// NewStaticStatsProvider creates a stats provider returning fixed demo
// view counts.
func NewStaticStatsProvider() StatsProvider {
	return &staticStatsProvider{}
}

func (p *staticStatsProvider) Stats(_ context.Context, _ int64) (map[string][]int, error) {
	return map[string][]int{
		"2022-01-01": {5, 10, 15},
		"2022-01-02": {20, 1, 2},
	}, nil
}
