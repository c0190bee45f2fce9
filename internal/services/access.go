package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
)

func callerID(ctx context.Context) (uuid.UUID, error) {
	id := ctxutil.UserID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, perrors.ErrUnauthorized
	}
	return id, nil
}

// ownedPortfolio loads a portfolio the caller owns. Someone else's portfolio
// reads as not found.
func ownedPortfolio(ctx context.Context, tx *gorm.DB, repo repos.PortfolioRepo, portfolioID uuid.UUID, tree bool) (*types.Portfolio, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	var p *types.Portfolio
	if tree {
		p, err = repo.GetTree(ctx, tx, portfolioID)
		if err != nil {
			return nil, err
		}
	} else {
		rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{portfolioID})
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			p = rows[0]
		}
	}
	if p == nil || p.OwnerID != owner {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, perrors.ErrNotFound)
	}
	return p, nil
}
