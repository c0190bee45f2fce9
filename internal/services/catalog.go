package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/templating"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// Catalog is the seed file format for shared themes and templates.
type Catalog struct {
	Colors    []*types.ColorTheme `yaml:"colors"`
	Fonts     []*types.FontTheme  `yaml:"fonts"`
	Templates []CatalogTemplate   `yaml:"templates"`
}

type CatalogTemplate struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Category    string           `yaml:"category"`
	Thumbnail   string           `yaml:"thumbnail"`
	Sections    []CatalogSection `yaml:"sections"`
}

type CatalogSection struct {
	Name        string         `yaml:"name"`
	Key         string         `yaml:"key"`
	Description string         `yaml:"description"`
	Layout      string         `yaml:"layout"`
	Blocks      []CatalogBlock `yaml:"blocks"`
}

type CatalogBlock struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Content map[string]any `yaml:"content"`
	Style   map[string]any `yaml:"style"`
}

func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// Template builds the named template, or nil when the catalog has none.
func (c *Catalog) Template(name string) (*types.Template, error) {
	for _, ct := range c.Templates {
		if strings.EqualFold(ct.Name, name) {
			return ct.Build()
		}
	}
	return nil, nil
}

func (ct CatalogTemplate) Build() (*types.Template, error) {
	t := &types.Template{
		Name:        ct.Name,
		Description: ct.Description,
		Category:    ct.Category,
	}
	if ct.Thumbnail != "" {
		thumb := ct.Thumbnail
		t.Thumbnail = &thumb
	}
	for i, cs := range ct.Sections {
		sec := &types.TemplateSection{
			Name:        cs.Name,
			SectionKey:  cs.Key,
			Description: cs.Description,
			LayoutType:  cs.Layout,
		}
		if sec.SectionKey == "" {
			sec.SectionKey = templating.SectionKey(sec)
		}
		for j, cb := range cs.Blocks {
			b := &types.TemplateBlock{Name: cb.Name, BlockType: cb.Type, OrderIndex: j}
			var err error
			if b.DefaultContent, err = toJSON(cb.Content); err != nil {
				return nil, fmt.Errorf("template %q section %q block %d content: %w", ct.Name, cs.Name, j, err)
			}
			if b.DefaultStyle, err = toJSON(cb.Style); err != nil {
				return nil, fmt.Errorf("template %q section %q block %d style: %w", ct.Name, cs.Name, j, err)
			}
			sec.Blocks = append(sec.Blocks, b)
		}
		t.Links = append(t.Links, &types.TemplateSectionLink{OrderIndex: i, Section: sec})
	}
	return t, nil
}

func toJSON(m map[string]any) (datatypes.JSON, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

type SeedResult struct {
	Colors    int `json:"colors"`
	Fonts     int `json:"fonts"`
	Templates int `json:"templates"`
}

// CatalogService seeds a catalog by name. Rows whose name already exists are
// skipped, so seeding twice is a no-op.
type CatalogService interface {
	Seed(ctx context.Context, c *Catalog) (SeedResult, error)
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	colorRepo    repos.ColorThemeRepo
	fontRepo     repos.FontThemeRepo
	templateRepo repos.TemplateRepo
}

func NewCatalogService(db *gorm.DB, baseLog *logger.Logger, colorRepo repos.ColorThemeRepo, fontRepo repos.FontThemeRepo, templateRepo repos.TemplateRepo) CatalogService {
	return &catalogService{
		db:           db,
		log:          baseLog.With("service", "CatalogService"),
		colorRepo:    colorRepo,
		fontRepo:     fontRepo,
		templateRepo: templateRepo,
	}
}

func (s *catalogService) Seed(ctx context.Context, c *Catalog) (SeedResult, error) {
	var res SeedResult
	if c == nil {
		return res, nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		colors, err := s.newColors(ctx, tx, c.Colors)
		if err != nil {
			return err
		}
		if _, err := s.colorRepo.Create(ctx, tx, colors); err != nil {
			return fmt.Errorf("seed colors: %w", err)
		}
		res.Colors = len(colors)

		fonts, err := s.newFonts(ctx, tx, c.Fonts)
		if err != nil {
			return err
		}
		if _, err := s.fontRepo.Create(ctx, tx, fonts); err != nil {
			return fmt.Errorf("seed fonts: %w", err)
		}
		res.Fonts = len(fonts)

		templates, err := s.newTemplates(ctx, tx, c.Templates)
		if err != nil {
			return err
		}
		if _, err := s.templateRepo.Create(ctx, tx, templates); err != nil {
			return fmt.Errorf("seed templates: %w", err)
		}
		res.Templates = len(templates)
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	s.log.Info("Seed: catalog applied", "colors", res.Colors, "fonts", res.Fonts, "templates", res.Templates)
	return res, nil
}

func (s *catalogService) newColors(ctx context.Context, tx *gorm.DB, in []*types.ColorTheme) ([]*types.ColorTheme, error) {
	names := make([]string, 0, len(in))
	for _, c := range in {
		names = append(names, c.Name)
	}
	existing, err := s.colorRepo.GetByNames(ctx, tx, names)
	if err != nil {
		return nil, err
	}
	have := map[string]bool{}
	for _, c := range existing {
		have[c.Name] = true
	}
	out := make([]*types.ColorTheme, 0, len(in))
	for _, c := range in {
		if c == nil || have[c.Name] {
			continue
		}
		have[c.Name] = true
		out = append(out, c)
	}
	return out, nil
}

func (s *catalogService) newFonts(ctx context.Context, tx *gorm.DB, in []*types.FontTheme) ([]*types.FontTheme, error) {
	names := make([]string, 0, len(in))
	for _, f := range in {
		names = append(names, f.Name)
	}
	existing, err := s.fontRepo.GetByNames(ctx, tx, names)
	if err != nil {
		return nil, err
	}
	have := map[string]bool{}
	for _, f := range existing {
		have[f.Name] = true
	}
	out := make([]*types.FontTheme, 0, len(in))
	for _, f := range in {
		if f == nil || have[f.Name] {
			continue
		}
		have[f.Name] = true
		out = append(out, f)
	}
	return out, nil
}

func (s *catalogService) newTemplates(ctx context.Context, tx *gorm.DB, in []CatalogTemplate) ([]*types.Template, error) {
	names := make([]string, 0, len(in))
	for _, t := range in {
		names = append(names, t.Name)
	}
	existing, err := s.templateRepo.GetByNames(ctx, tx, names)
	if err != nil {
		return nil, err
	}
	have := map[string]bool{}
	for _, t := range existing {
		have[t.Name] = true
	}
	out := make([]*types.Template, 0, len(in))
	for _, ct := range in {
		if have[ct.Name] {
			continue
		}
		t, err := ct.Build()
		if err != nil {
			return nil, err
		}
		if err := templating.Validate(t); err != nil {
			return nil, fmt.Errorf("template %q: %w", ct.Name, err)
		}
		have[ct.Name] = true
		out = append(out, t)
	}
	return out, nil
}
