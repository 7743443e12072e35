package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

const routeColumns = `id, code, distance_km, traffic_level, base_time_minutes, description, is_active, created_at, version`

func scanRoute(row rowScanner) (*domain.Route, error) {
	route := &domain.Route{}

	dst := []any{
		&route.ID,
		&route.Code,
		&route.DistanceKm,
		&route.TrafficLevel,
		&route.BaseTimeMinutes,
		&route.Description,
		&route.IsActive,
		&route.CreatedAt,
		&route.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	return route, nil
}

func (r *Repository) CreateRoute(route *domain.Route) error {
	query := `
		INSERT INTO routes (code, distance_km, traffic_level, base_time_minutes, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{route.Code, route.DistanceKm, route.TrafficLevel, route.BaseTimeMinutes, route.Description}
	dst := []any{&route.ID, &route.IsActive, &route.CreatedAt, &route.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRouteByID(id int64) (*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanRoute(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetAllRoutes() ([]*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE is_active ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.queryRoutes(ctx, query)
}

func (r *Repository) queryRoutes(ctx context.Context, query string, args ...any) ([]*domain.Route, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

func (r *Repository) UpdateRoute(route *domain.Route) error {
	query := `
		UPDATE routes
		SET
			distance_km = $1,
			traffic_level = $2,
			base_time_minutes = $3,
			description = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{route.DistanceKm, route.TrafficLevel, route.BaseTimeMinutes, route.Description, route.IsActive, route.ID, route.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&route.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeactivateRoute(id int64) error {
	query := `UPDATE routes SET is_active = FALSE, version = version + 1 WHERE id = $1 AND is_active`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
