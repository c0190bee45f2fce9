package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/portfolio-backend/internal/domain"
)

func SeedPortfolio(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.Portfolio {
	tb.Helper()
	p := &types.Portfolio{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
		Status:  types.PortfolioStatusDraft,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed portfolio: %v", err)
	}
	return p
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, portfolioID uuid.UUID, title string, index int, enabled bool) *types.Section {
	tb.Helper()
	s := &types.Section{
		ID:          uuid.New(),
		PortfolioID: portfolioID,
		Title:       title,
		OrderIndex:  index,
		IsEnabled:   enabled,
		LayoutType:  "default",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return s
}

func SeedBlock(tb testing.TB, ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, index int, content string) *types.Block {
	tb.Helper()
	b := &types.Block{
		ID:         uuid.New(),
		SectionID:  sectionID,
		BlockType:  types.BlockTypeText,
		OrderIndex: index,
		Content:    datatypes.JSON([]byte(content)),
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed block: %v", err)
	}
	return b
}

// SeedTemplate creates a template with one link per layout type, each section
// holding an image block followed by a text block.
func SeedTemplate(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, layouts ...string) *types.Template {
	tb.Helper()
	t := &types.Template{ID: uuid.New(), Name: name, Description: "seeded"}
	for i, layout := range layouts {
		sec := &types.TemplateSection{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("%s section %d", name, i),
			LayoutType: layout,
		}
		sec.Blocks = []*types.TemplateBlock{
			{ID: uuid.New(), TemplateSectionID: sec.ID, Name: "photo", BlockType: types.BlockTypeImage, OrderIndex: 0,
				DefaultContent: datatypes.JSON([]byte(`{"src":""}`)), DefaultStyle: datatypes.JSON([]byte(`{"borderRadius":"50%"}`))},
			{ID: uuid.New(), TemplateSectionID: sec.ID, Name: "about", BlockType: types.BlockTypeText, OrderIndex: 1,
				DefaultContent: datatypes.JSON([]byte(`{"text":"hello"}`)), DefaultStyle: datatypes.JSON([]byte(`{}`))},
		}
		t.Links = append(t.Links, &types.TemplateSectionLink{
			ID:                uuid.New(),
			TemplateID:        t.ID,
			TemplateSectionID: sec.ID,
			OrderIndex:        i,
			Section:           sec,
		})
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed template: %v", err)
	}
	return t
}

func SeedColorTheme(tb testing.TB, ctx context.Context, tx *gorm.DB, name, primary string) *types.ColorTheme {
	tb.Helper()
	c := &types.ColorTheme{ID: uuid.New(), Name: name, PrimaryColor: primary, SecondaryColor: "#FFFFFF", BackgroundColor: "#F0F0F0"}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed color theme: %v", err)
	}
	return c
}

func SeedFontTheme(tb testing.TB, ctx context.Context, tx *gorm.DB, name, family string, active bool) *types.FontTheme {
	tb.Helper()
	f := &types.FontTheme{ID: uuid.New(), Name: name, FontFamily: family, IsActive: active}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed font theme: %v", err)
	}
	return f
}

func SeedActivity(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string, imageURLs ...string) *types.Activity {
	tb.Helper()
	a := &types.Activity{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		ActivityName: name,
		ActivityAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Institution:  "School",
		TypeName:     "Competition",
		LevelName:    "National",
		RewardLevel:  "Gold",
	}
	for _, u := range imageURLs {
		a.Images = append(a.Images, &types.ActivityImage{ID: uuid.New(), ActivityID: a.ID, ImageURL: u})
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	return a
}

func SeedWork(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.Work {
	tb.Helper()
	w := &types.Work{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		WorkingName: name,
		Status:      "done",
		WorkingAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TypeName:    "Project",
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed work: %v", err)
	}
	return w
}
