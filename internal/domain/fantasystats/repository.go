package fantasystats

import "context"

// Repository persists per-gameweek fantasy history rows.
type Repository interface {
	Upsert(ctx context.Context, stat GameweekStat) error
}
