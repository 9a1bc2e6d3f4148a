package graph

import (
	"context"

	"storefront-be/internal/company"
	"storefront-be/internal/graph/model"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func mutationFailure(ctx context.Context, method string, err error) *model.MutationResponse {
	return &model.MutationResponse{
		Success: false,
		Message: utils.StrPtr(userMessage(ctx, method, err)),
	}
}

func (r *mutationResolver) UpdateCompanyStatus(ctx context.Context, companyID string, status model.CompanyStatus) (*model.MutationResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return mutationFailure(ctx, "UpdateCompanyStatus", errInvalidCompanyID), nil
	}

	parsed, err := company.ParseStatus(status.String())
	if err != nil {
		return mutationFailure(ctx, "UpdateCompanyStatus", err), nil
	}

	if err := r.CompanyRepo.UpdateStatus(ctx, cid, parsed); err != nil {
		return mutationFailure(ctx, "UpdateCompanyStatus", err), nil
	}

	return &model.MutationResponse{Success: true, Message: utils.StrPtr("Company status updated")}, nil
}

func (r *mutationResolver) UpdateCompanyCommission(ctx context.Context, companyID string, commissionRate decimal.Decimal) (*model.MutationResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return mutationFailure(ctx, "UpdateCompanyCommission", errInvalidCompanyID), nil
	}

	if err := r.CompanyRepo.UpdateCommission(ctx, cid, commissionRate); err != nil {
		return mutationFailure(ctx, "UpdateCompanyCommission", err), nil
	}

	return &model.MutationResponse{Success: true, Message: utils.StrPtr("Commission rate updated")}, nil
}
