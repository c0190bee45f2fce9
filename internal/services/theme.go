package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type ThemeService interface {
	ListColors(ctx context.Context) ([]*types.ColorTheme, error)
	ListActiveFonts(ctx context.Context) ([]*types.FontTheme, error)
	// RenderContext activates the referenced themes. Missing or unknown ids
	// fall back to the defaults.
	RenderContext(ctx context.Context, colorThemeID, fontThemeID *uuid.UUID) (theme.RenderContext, error)
}

type themeService struct {
	db        *gorm.DB
	log       *logger.Logger
	colorRepo repos.ColorThemeRepo
	fontRepo  repos.FontThemeRepo
}

func NewThemeService(db *gorm.DB, baseLog *logger.Logger, colorRepo repos.ColorThemeRepo, fontRepo repos.FontThemeRepo) ThemeService {
	return &themeService{
		db:        db,
		log:       baseLog.With("service", "ThemeService"),
		colorRepo: colorRepo,
		fontRepo:  fontRepo,
	}
}

func (s *themeService) ListColors(ctx context.Context) ([]*types.ColorTheme, error) {
	return s.colorRepo.List(ctx, nil)
}

func (s *themeService) ListActiveFonts(ctx context.Context) ([]*types.FontTheme, error) {
	return s.fontRepo.ListActive(ctx, nil)
}

func (s *themeService) RenderContext(ctx context.Context, colorThemeID, fontThemeID *uuid.UUID) (theme.RenderContext, error) {
	var (
		color *types.ColorTheme
		font  *types.FontTheme
	)
	if colorThemeID != nil {
		rows, err := s.colorRepo.GetByIDs(ctx, nil, []uuid.UUID{*colorThemeID})
		if err != nil {
			return theme.RenderContext{}, err
		}
		if len(rows) > 0 {
			color = rows[0]
		} else {
			s.log.Warn("RenderContext: color theme missing, using defaults", "color_theme_id", *colorThemeID)
		}
	}
	if fontThemeID != nil {
		rows, err := s.fontRepo.GetByIDs(ctx, nil, []uuid.UUID{*fontThemeID})
		if err != nil {
			return theme.RenderContext{}, err
		}
		if len(rows) > 0 {
			font = rows[0]
		} else {
			s.log.Warn("RenderContext: font theme missing, using defaults", "font_theme_id", *fontThemeID)
		}
	}
	return theme.Activate(color, font), nil
}
