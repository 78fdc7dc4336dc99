package postgresql

import (
	"context"
	"fmt"

	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/hadirin/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryConfigRepository struct {
	db *database.DB
}

func NewSalaryConfigRepository(db *database.DB) salary.ConfigRepository {
	return &salaryConfigRepository{db: db}
}

// GetActive implements salary.ConfigRepository.
func (r *salaryConfigRepository) GetActive(ctx context.Context) (salary.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, hourly_rate, minute_rate, overtime_multiplier, weekend_multiplier,
			   paid_leave_rate, updated_at
		FROM salary_configs
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var cfg salary.Config
	err := q.QueryRow(ctx, query).Scan(
		&cfg.ID, &cfg.HourlyRate, &cfg.MinuteRate, &cfg.OvertimeMultiplier,
		&cfg.WeekendMultiplier, &cfg.PaidLeaveRate, &cfg.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Config{}, salary.ErrConfigNotFound
		}
		return salary.Config{}, fmt.Errorf("failed to get salary config: %w", err)
	}

	return cfg, nil
}

// Upsert implements salary.ConfigRepository.
func (r *salaryConfigRepository) Upsert(ctx context.Context, cfg salary.Config) (salary.Config, error) {
	q := GetQuerier(ctx, r.db)

	// Singleton row keyed by id; the first write creates it.
	query := `
		INSERT INTO salary_configs (
			id, hourly_rate, minute_rate, overtime_multiplier, weekend_multiplier, paid_leave_rate, updated_at
		) VALUES (
			COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			hourly_rate = EXCLUDED.hourly_rate,
			minute_rate = EXCLUDED.minute_rate,
			overtime_multiplier = EXCLUDED.overtime_multiplier,
			weekend_multiplier = EXCLUDED.weekend_multiplier,
			paid_leave_rate = EXCLUDED.paid_leave_rate,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		cfg.ID,
		cfg.HourlyRate,
		cfg.MinuteRate,
		cfg.OvertimeMultiplier,
		cfg.WeekendMultiplier,
		cfg.PaidLeaveRate,
	).Scan(&cfg.ID, &cfg.UpdatedAt)

	if err != nil {
		return salary.Config{}, fmt.Errorf("failed to upsert salary config: %w", err)
	}

	return cfg, nil
}
