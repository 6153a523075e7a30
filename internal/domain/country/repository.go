package country

import "context"

// Repository resolves country reference data by name. GetByAltName
// consults the alternate-name table and is the fallback when the
// direct name lookup misses.
type Repository interface {
	GetByName(ctx context.Context, name string) (Country, bool, error)
	GetByAltName(ctx context.Context, name string) (Country, bool, error)
}
