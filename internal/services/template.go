package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/snapshot"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/templating"
	"github.com/yungbote/portfolio-backend/internal/observability"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type TemplateService interface {
	List(ctx context.Context, page, limit int) ([]*types.Template, int64, error)
	Get(ctx context.Context, templateID uuid.UUID) (*types.Template, error)
	Preview(ctx context.Context, templateID uuid.UUID, colorThemeID, fontThemeID *uuid.UUID) (render.Document, error)
	// Use forks the template into a new portfolio for the caller. When the
	// caller already forked it, the existing portfolio is returned and
	// created is false.
	Use(ctx context.Context, templateID uuid.UUID) (p *types.Portfolio, created bool, err error)

	Create(ctx context.Context, t *types.Template) (*types.Template, error)
	Update(ctx context.Context, templateID uuid.UUID, t *types.Template) (*types.Template, error)
	Delete(ctx context.Context, templateID uuid.UUID) error
	RenderThumbnail(ctx context.Context, templateID uuid.UUID) (string, error)
}

type templateService struct {
	db            *gorm.DB
	log           *logger.Logger
	templateRepo  repos.TemplateRepo
	portfolioRepo repos.PortfolioRepo
	themes        ThemeService
	pipeline      *snapshot.Pipeline
}

func NewTemplateService(db *gorm.DB, baseLog *logger.Logger, templateRepo repos.TemplateRepo, portfolioRepo repos.PortfolioRepo, themes ThemeService, pipeline *snapshot.Pipeline) TemplateService {
	return &templateService{
		db:            db,
		log:           baseLog.With("service", "TemplateService"),
		templateRepo:  templateRepo,
		portfolioRepo: portfolioRepo,
		themes:        themes,
		pipeline:      pipeline,
	}
}

func (s *templateService) List(ctx context.Context, page, limit int) ([]*types.Template, int64, error) {
	return s.templateRepo.List(ctx, nil, page, limit)
}

func (s *templateService) Get(ctx context.Context, templateID uuid.UUID) (*types.Template, error) {
	return s.templateRepo.GetTree(ctx, nil, templateID)
}

func (s *templateService) Preview(ctx context.Context, templateID uuid.UUID, colorThemeID, fontThemeID *uuid.UUID) (render.Document, error) {
	t, err := s.templateRepo.GetTree(ctx, nil, templateID)
	if err != nil {
		return render.Document{}, err
	}
	rc, err := s.themes.RenderContext(ctx, colorThemeID, fontThemeID)
	if err != nil {
		return render.Document{}, err
	}
	start := time.Now()
	doc := templating.Preview(t, rc)
	observability.Current().ObserveRender("template", nil, time.Since(start))
	return doc, nil
}

func (s *templateService) Use(ctx context.Context, templateID uuid.UUID) (*types.Portfolio, bool, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.portfolioRepo.GetByOwnerAndTemplate(ctx, nil, owner, templateID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		tree, err := s.portfolioRepo.GetTree(ctx, nil, existing.ID)
		return tree, false, err
	}

	t, err := s.templateRepo.GetTree(ctx, nil, templateID)
	if err != nil {
		return nil, false, err
	}
	tid := t.ID
	p := &types.Portfolio{
		ID:          uuid.New(),
		OwnerID:     owner,
		Name:        t.Name,
		Description: t.Description,
		Status:      types.PortfolioStatusDraft,
		TemplateID:  &tid,
	}
	p.Sections = templating.Fork(t, p.ID)

	if _, err := s.portfolioRepo.Create(ctx, nil, []*types.Portfolio{p}); err != nil {
		s.log.Warn("Use: fork insert failed", "template_id", templateID, "error", err)
		return nil, false, fmt.Errorf("fork template: %w", err)
	}
	s.log.Info("Use: template forked", "template_id", templateID, "portfolio_id", p.ID, "sections", len(p.Sections))
	return p, true, nil
}

func normalizeTemplate(t *types.Template) {
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	for i, l := range templating.SortedLinks(t) {
		l.ID = uuid.Nil
		l.OrderIndex = i
		if l.Section == nil {
			continue
		}
		l.Section.ID = uuid.Nil
		l.TemplateSectionID = uuid.Nil
		if l.Section.SectionKey == "" {
			l.Section.SectionKey = templating.SectionKey(l.Section)
		}
		for j, b := range l.Section.Blocks {
			b.ID = uuid.Nil
			b.TemplateSectionID = uuid.Nil
			b.OrderIndex = j
			if b.BlockType != types.BlockTypeImage {
				b.BlockType = types.BlockTypeText
			}
		}
	}
}

func (s *templateService) Create(ctx context.Context, t *types.Template) (*types.Template, error) {
	if t == nil {
		return nil, fmt.Errorf("create template: %w", perrors.ErrInvalidArgument)
	}
	t.ID = uuid.Nil
	normalizeTemplate(t)
	if err := templating.Validate(t); err != nil {
		return nil, err
	}
	if _, err := s.templateRepo.Create(ctx, nil, []*types.Template{t}); err != nil {
		s.log.Warn("Create: insert failed", "name", t.Name, "error", err)
		return nil, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// Update replaces the template's fields and sections. Portfolios forked
// earlier keep their copies.
func (s *templateService) Update(ctx context.Context, templateID uuid.UUID, t *types.Template) (*types.Template, error) {
	if t == nil {
		return nil, fmt.Errorf("update template: %w", perrors.ErrInvalidArgument)
	}
	t.ID = templateID
	normalizeTemplate(t)
	if err := templating.Validate(t); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"category":    t.Category,
			"thumbnail":   t.Thumbnail,
		}
		if err := s.templateRepo.UpdateFields(ctx, tx, templateID, fields); err != nil {
			return err
		}
		return s.templateRepo.ReplaceLinks(ctx, tx, templateID, t.Links)
	})
	if err != nil {
		s.log.Warn("Update: failed", "template_id", templateID, "error", err)
		return nil, err
	}
	return s.templateRepo.GetTree(ctx, nil, templateID)
}

func (s *templateService) Delete(ctx context.Context, templateID uuid.UUID) error {
	if _, err := s.templateRepo.GetTree(ctx, nil, templateID); err != nil {
		return err
	}
	return s.templateRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{templateID})
}

// RenderThumbnail rasterizes the default-theme preview and records the
// uploaded URL on the template.
func (s *templateService) RenderThumbnail(ctx context.Context, templateID uuid.UUID) (string, error) {
	if s.pipeline == nil {
		return "", fmt.Errorf("thumbnail: capture not configured: %w", perrors.ErrInvalidArgument)
	}
	doc, err := s.Preview(ctx, templateID, nil, nil)
	if err != nil {
		return "", err
	}
	start := time.Now()
	url, err := s.pipeline.Capture(ctx, doc)
	observability.Current().ObserveSnapshot("template", err, time.Since(start))
	if err != nil {
		s.log.Warn("RenderThumbnail: capture failed", "template_id", templateID, "error", err)
		return "", err
	}
	if err := s.templateRepo.UpdateFields(ctx, nil, templateID, map[string]interface{}{"thumbnail": url}); err != nil {
		return url, fmt.Errorf("record thumbnail: %w: %w", perrors.ErrPersistenceFailure, err)
	}
	return url, nil
}
