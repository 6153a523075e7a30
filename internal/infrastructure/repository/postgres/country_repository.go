package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfooty/statsync/internal/domain/country"
	qb "github.com/openfooty/statsync/internal/platform/querybuilder"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

type countryTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (r *CountryRepository) GetByName(ctx context.Context, name string) (country.Country, bool, error) {
	query, args, err := qb.Select("id", "name").From("countries").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return country.Country{}, false, fmt.Errorf("build select country query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *CountryRepository) GetByAltName(ctx context.Context, name string) (country.Country, bool, error) {
	query, args, err := qb.Select("c.id", "c.name").
		From("countries c JOIN country_alt_names a ON a.country_id = c.id").
		Where(qb.Eq("a.alt_name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return country.Country{}, false, fmt.Errorf("build select country by alt name query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *CountryRepository) getOne(ctx context.Context, query string, args []any) (country.Country, bool, error) {
	var row countryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return country.Country{}, false, nil
		}
		return country.Country{}, false, fmt.Errorf("select country: %w", err)
	}

	return country.Country{ID: row.ID, Name: row.Name}, true, nil
}
