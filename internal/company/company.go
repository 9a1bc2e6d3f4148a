// Package company holds the two administration procedures that share the
// order core's database: company status and commission rate updates.
package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusRejected  Status = "rejected"
)

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusActive, StatusSuspended, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrInvalidStatus     = errors.New("invalid company status")
	ErrInvalidCommission = errors.New("commission rate must be between 0 and 100")
	maxCommissionRate    = decimal.NewFromInt(100)
)

type Repository interface {
	UpdateStatus(ctx context.Context, companyID uuid.UUID, status Status) error
	UpdateCommission(ctx context.Context, companyID uuid.UUID, rate decimal.Decimal) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpdateStatus(ctx context.Context, companyID uuid.UUID, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateCompanyStatus"),
		zap.String("company_id", companyID.String()),
		zap.String("status", string(status)),
	)

	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE companies SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, companyID,
	)
	return r.checkUpdated(log, res, err)
}

func (r *repository) UpdateCommission(ctx context.Context, companyID uuid.UUID, rate decimal.Decimal) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateCompanyCommission"),
		zap.String("company_id", companyID.String()),
		zap.String("rate", rate.String()),
	)

	if rate.IsNegative() || rate.GreaterThan(maxCommissionRate) {
		return ErrInvalidCommission
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE companies SET commission_rate = $1, updated_at = NOW() WHERE id = $2`,
		rate.Round(2), companyID,
	)
	return r.checkUpdated(log, res, err)
}

func (r *repository) checkUpdated(log *zap.Logger, res sql.Result, err error) error {
	if err != nil {
		log.Error("company update failed", zap.Error(err))
		return fmt.Errorf("failed to update company: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCompanyNotFound
	}
	log.Info("company updated")
	return nil
}
