/**
 * @description
 * This file implements the data access layer for the supported-banks
 * directory consumed by the payments step of the onboarding wizard.
 *
 * @dependencies
 * - context: For managing request-scoped deadlines and cancellations.
 * - github.com/jackc/pgx/v5/pgxpool: The PostgreSQL driver.
 * - The service's internal domain package for the Bank model.
 */
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vayva/onboarding-service/internal/domain"
)

// PostgresBankRepository is the PostgreSQL implementation of BankRepository.
type PostgresBankRepository struct {
	db *pgxpool.Pool
}

// NewPostgresBankRepository creates a new instance of PostgresBankRepository.
func NewPostgresBankRepository(db *pgxpool.Pool) *PostgresBankRepository {
	return &PostgresBankRepository{db: db}
}

// ListBanks returns the full bank directory ordered by display name.
func (r *PostgresBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	rows, err := r.db.Query(ctx, `SELECT name, code FROM banks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	var banks []domain.Bank
	for rows.Next() {
		var b domain.Bank
		if err := rows.Scan(&b.Name, &b.Code); err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}
