package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/session"
)

// gormPersistence backs editor sessions with the portfolio repos.
type gormPersistence struct {
	db            *gorm.DB
	portfolioRepo repos.PortfolioRepo
	sectionRepo   repos.SectionRepo
	blockRepo     repos.BlockRepo
}

func NewPersistence(db *gorm.DB, portfolioRepo repos.PortfolioRepo, sectionRepo repos.SectionRepo, blockRepo repos.BlockRepo) session.Persistence {
	return &gormPersistence{db: db, portfolioRepo: portfolioRepo, sectionRepo: sectionRepo, blockRepo: blockRepo}
}

func (p *gormPersistence) CreateSection(ctx context.Context, section *types.Section) error {
	// blocks are created through CreateBlock
	row := *section
	row.Blocks = nil
	if _, err := p.sectionRepo.Create(ctx, nil, []*types.Section{&row}); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	section.CreatedAt, section.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (p *gormPersistence) UpdateSection(ctx context.Context, sectionID uuid.UUID, fields map[string]interface{}) error {
	return p.sectionRepo.UpdateFields(ctx, nil, sectionID, fields)
}

// DeleteSection removes the section and its blocks together.
func (p *gormPersistence) DeleteSection(ctx context.Context, sectionID uuid.UUID) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{sectionID}
		if err := p.blockRepo.SoftDeleteBySectionIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete section blocks: %w", err)
		}
		if err := p.sectionRepo.SoftDeleteByIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete section: %w", err)
		}
		return nil
	})
}

func (p *gormPersistence) CreateBlock(ctx context.Context, block *types.Block) error {
	if _, err := p.blockRepo.Create(ctx, nil, []*types.Block{block}); err != nil {
		return fmt.Errorf("create block: %w", err)
	}
	return nil
}

func (p *gormPersistence) UpdateBlock(ctx context.Context, blockID uuid.UUID, fields map[string]interface{}) error {
	return p.blockRepo.UpdateFields(ctx, nil, blockID, fields)
}

func (p *gormPersistence) DeleteBlock(ctx context.Context, blockID uuid.UUID) error {
	return p.blockRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{blockID})
}

func (p *gormPersistence) UpdatePortfolio(ctx context.Context, portfolioID uuid.UUID, fields map[string]interface{}) error {
	return p.portfolioRepo.UpdateFields(ctx, nil, portfolioID, fields)
}
