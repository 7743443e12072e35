package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

const driverColumns = `id, name, code, current_shift_hours, past_7_days_work_hours, is_active, created_at, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	driver := &domain.Driver{}
	hours := []float64{}

	dst := []any{
		&driver.ID,
		&driver.Name,
		&driver.Code,
		&driver.CurrentShiftHours,
		pgtype.NewMap().SQLScanner(&hours),
		&driver.IsActive,
		&driver.CreatedAt,
		&driver.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	// 数据库中的 CHECK 约束保证了长度为 7
	copy(driver.Past7DaysWorkHours[:], hours)

	return driver, nil
}

func (r *Repository) CreateDriver(driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (name, code, current_shift_hours, past_7_days_work_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{driver.Name, driver.Code, driver.CurrentShiftHours, driver.Past7DaysWorkHours[:]}
	dst := []any{&driver.ID, &driver.IsActive, &driver.CreatedAt, &driver.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDriverByID(id int64) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanDriver(r.dbpool.QueryRowContext(ctx, query, id))
}

// GetAllDrivers 只返回在职的司机
func (r *Repository) GetAllDrivers() ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE is_active ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.queryDrivers(ctx, query)
}

func (r *Repository) queryDrivers(ctx context.Context, query string, args ...any) ([]*domain.Driver, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0)
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (r *Repository) UpdateDriver(driver *domain.Driver) error {
	query := `
		UPDATE drivers
		SET
			name = $1,
			current_shift_hours = $2,
			past_7_days_work_hours = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{driver.Name, driver.CurrentShiftHours, driver.Past7DaysWorkHours[:], driver.IsActive, driver.ID, driver.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&driver.Version); err != nil {
		return err
	}

	return nil
}

// DeactivateDriver 软删除：司机不再出现在快照中，但历史分配记录仍然有效
func (r *Repository) DeactivateDriver(id int64) error {
	query := `UPDATE drivers SET is_active = FALSE, version = version + 1 WHERE id = $1 AND is_active`

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
