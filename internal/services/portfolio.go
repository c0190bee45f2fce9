package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/session"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/snapshot"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	"github.com/yungbote/portfolio-backend/internal/observability"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/pkg/supersede"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/platform/validate"
)

type CreatePortfolioInput struct {
	Name         string     `json:"name" validate:"required,notblank,max=100"`
	Description  string     `json:"description" validate:"max=500"`
	ColorThemeID *uuid.UUID `json:"color_theme_id"`
	FontThemeID  *uuid.UUID `json:"font_theme_id"`
}

// PortfolioPatch is a partial update; nil fields are left alone.
type PortfolioPatch struct {
	Name          *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	Status        *string `json:"status" validate:"omitempty,oneof=draft published"`
	CoverImageURL *string `json:"cover_image_url" validate:"omitempty,url,imageurl"`
}

// ThemeSelectionInput is the full selection the editor holds. A nil id
// clears that theme.
type ThemeSelectionInput struct {
	ColorThemeID *uuid.UUID `json:"color_theme_id"`
	FontThemeID  *uuid.UUID `json:"font_theme_id"`
}

type PortfolioService interface {
	Create(ctx context.Context, in CreatePortfolioInput) (*types.Portfolio, error)
	List(ctx context.Context, page, limit int) ([]*types.Portfolio, int64, error)
	Get(ctx context.Context, portfolioID uuid.UUID) (*types.Portfolio, error)
	Patch(ctx context.Context, portfolioID uuid.UUID, in PortfolioPatch) (*types.Portfolio, error)
	Delete(ctx context.Context, portfolioID uuid.UUID) error
	// Render composes the portfolio for display. A newer render by the same
	// caller supersedes one still in flight.
	Render(ctx context.Context, portfolioID uuid.UUID) (render.Document, error)
	SaveTheme(ctx context.Context, portfolioID uuid.UUID, in ThemeSelectionInput) (theme.ChangeSet, error)
	// Snapshot captures and uploads a thumbnail and records its URL. On
	// failure the previous snapshot URL is kept.
	Snapshot(ctx context.Context, portfolioID uuid.UUID) (string, error)
}

type portfolioService struct {
	db            *gorm.DB
	log           *logger.Logger
	portfolioRepo repos.PortfolioRepo
	sectionRepo   repos.SectionRepo
	blockRepo     repos.BlockRepo
	refs          ReferenceStore
	themes        ThemeService
	store         session.Persistence
	pipeline      *snapshot.Pipeline

	renders *supersede.Loader[render.Document]
	locks   *portfolioLocks
}

func NewPortfolioService(
	db *gorm.DB,
	baseLog *logger.Logger,
	portfolioRepo repos.PortfolioRepo,
	sectionRepo repos.SectionRepo,
	blockRepo repos.BlockRepo,
	refs ReferenceStore,
	themes ThemeService,
	pipeline *snapshot.Pipeline,
) PortfolioService {
	return &portfolioService{
		db:            db,
		log:           baseLog.With("service", "PortfolioService"),
		portfolioRepo: portfolioRepo,
		sectionRepo:   sectionRepo,
		blockRepo:     blockRepo,
		refs:          refs,
		themes:        themes,
		store:         NewPersistence(db, portfolioRepo, sectionRepo, blockRepo),
		pipeline:      pipeline,
		renders:       supersede.NewLoader[render.Document](),
		locks:         newPortfolioLocks(),
	}
}

func (s *portfolioService) Create(ctx context.Context, in CreatePortfolioInput) (*types.Portfolio, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Default().Check(in); err != nil {
		return nil, err
	}
	p := &types.Portfolio{
		ID:           uuid.New(),
		OwnerID:      owner,
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Status:       types.PortfolioStatusDraft,
		ColorThemeID: in.ColorThemeID,
		FontThemeID:  in.FontThemeID,
	}
	if _, err := s.portfolioRepo.Create(ctx, nil, []*types.Portfolio{p}); err != nil {
		s.log.Warn("Create: insert failed", "error", err)
		return nil, fmt.Errorf("create portfolio: %w", err)
	}
	return p, nil
}

func (s *portfolioService) List(ctx context.Context, page, limit int) ([]*types.Portfolio, int64, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.portfolioRepo.ListByOwner(ctx, nil, owner, page, limit)
}

func (s *portfolioService) Get(ctx context.Context, portfolioID uuid.UUID) (*types.Portfolio, error) {
	return ownedPortfolio(ctx, nil, s.portfolioRepo, portfolioID, true)
}

func (s *portfolioService) Patch(ctx context.Context, portfolioID uuid.UUID, in PortfolioPatch) (*types.Portfolio, error) {
	if err := validate.Default().Check(in); err != nil {
		return nil, err
	}
	p, err := ownedPortfolio(ctx, nil, s.portfolioRepo, portfolioID, false)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
		fields["name"] = p.Name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
		fields["description"] = p.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
		fields["status"] = p.Status
	}
	if in.CoverImageURL != nil {
		url := strings.TrimSpace(*in.CoverImageURL)
		p.CoverImageURL = &url
		fields["cover_image_url"] = url
	}
	if err := s.portfolioRepo.UpdateFields(ctx, nil, portfolioID, fields); err != nil {
		s.log.Warn("Patch: update failed", "portfolio_id", portfolioID, "error", err)
		return nil, fmt.Errorf("patch portfolio: %w", err)
	}
	return p, nil
}

// Delete removes the portfolio with its sections and blocks in one
// transaction.
func (s *portfolioService) Delete(ctx context.Context, portfolioID uuid.UUID) error {
	if _, err := ownedPortfolio(ctx, nil, s.portfolioRepo, portfolioID, false); err != nil {
		return err
	}
	unlock := s.locks.lock(portfolioID)
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{portfolioID}
		sections, err := s.sectionRepo.GetByPortfolioIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		sectionIDs := make([]uuid.UUID, 0, len(sections))
		for _, sec := range sections {
			sectionIDs = append(sectionIDs, sec.ID)
		}
		if err := s.blockRepo.SoftDeleteBySectionIDs(ctx, tx, sectionIDs); err != nil {
			return fmt.Errorf("delete blocks: %w", err)
		}
		if err := s.sectionRepo.SoftDeleteByPortfolioIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete sections: %w", err)
		}
		if err := s.portfolioRepo.SoftDeleteByIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete portfolio: %w", err)
		}
		return nil
	})
}

func (s *portfolioService) Render(ctx context.Context, portfolioID uuid.UUID) (render.Document, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return render.Document{}, err
	}
	start := time.Now()
	doc, err := s.renders.Load(ctx, owner.String(), func(ctx context.Context) (render.Document, error) {
		return s.compose(ctx, portfolioID)
	})
	observability.Current().ObserveRender("portfolio", err, time.Since(start))
	return doc, err
}

// compose builds the document. Blocks that fail to resolve are left out and
// only logged.
func (s *portfolioService) compose(ctx context.Context, portfolioID uuid.UUID) (render.Document, error) {
	p, err := ownedPortfolio(ctx, nil, s.portfolioRepo, portfolioID, true)
	if err != nil {
		return render.Document{}, err
	}
	live, err := s.refs.LoadLive(ctx, p.OwnerID)
	if err != nil {
		return render.Document{}, err
	}
	rc, err := s.themes.RenderContext(ctx, p.ColorThemeID, p.FontThemeID)
	if err != nil {
		return render.Document{}, err
	}
	doc, diags := render.Compose(p, live, rc)
	if diags != nil {
		errs := multierr.Errors(diags)
		s.log.Warn("compose: blocks left out", "portfolio_id", portfolioID, "count", len(errs), "first", errs[0].Error())
	}
	return doc, nil
}

func (s *portfolioService) SaveTheme(ctx context.Context, portfolioID uuid.UUID, in ThemeSelectionInput) (theme.ChangeSet, error) {
	p, err := ownedPortfolio(ctx, nil, s.portfolioRepo, portfolioID, false)
	if err != nil {
		return theme.ChangeSet{}, err
	}
	unlock := s.locks.lock(portfolioID)
	defer unlock()

	sess, err := session.Open(ctx, p, s.store, s.log)
	if err != nil {
		return theme.ChangeSet{}, err
	}
	sess.SelectColorTheme(in.ColorThemeID)
	sess.SelectFontTheme(in.FontThemeID)
	return sess.SaveTheme(ctx)
}

func (s *portfolioService) Snapshot(ctx context.Context, portfolioID uuid.UUID) (string, error) {
	if s.pipeline == nil {
		return "", fmt.Errorf("snapshot: capture not configured: %w", perrors.ErrInvalidArgument)
	}
	doc, err := s.compose(ctx, portfolioID)
	if err != nil {
		return "", err
	}
	start := time.Now()
	url, err := s.pipeline.Capture(ctx, doc)
	observability.Current().ObserveSnapshot("portfolio", err, time.Since(start))
	if err != nil {
		s.log.Warn("Snapshot: capture failed, keeping previous", "portfolio_id", portfolioID, "error", err)
		return "", err
	}
	if err := s.portfolioRepo.UpdateFields(ctx, nil, portfolioID, map[string]interface{}{"snapshot_url": url}); err != nil {
		s.log.Warn("Snapshot: recording url failed", "portfolio_id", portfolioID, "error", err)
		return url, fmt.Errorf("record snapshot: %w: %w", perrors.ErrPersistenceFailure, err)
	}
	return url, nil
}
