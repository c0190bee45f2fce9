package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"gorm.io/datatypes"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/layout"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/ordering"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/render"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// Persistence is the remote side of an editing session. UpdatePortfolio
// takes a partial field set.
type Persistence interface {
	CreateSection(ctx context.Context, section *types.Section) error
	UpdateSection(ctx context.Context, sectionID uuid.UUID, fields map[string]interface{}) error
	DeleteSection(ctx context.Context, sectionID uuid.UUID) error
	CreateBlock(ctx context.Context, block *types.Block) error
	UpdateBlock(ctx context.Context, blockID uuid.UUID, fields map[string]interface{}) error
	DeleteBlock(ctx context.Context, blockID uuid.UUID) error
	UpdatePortfolio(ctx context.Context, portfolioID uuid.UUID, fields map[string]interface{}) error
}

type Direction int

const (
	Up Direction = iota
	Down
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return Up, fmt.Errorf("direction %q: %w", s, perrors.ErrInvalidArgument)
}

// Session owns one portfolio tree. Structural mutations are applied locally
// and then persisted while holding the session lock, so no two run at once.
// When persisting fails the local change is kept and ErrPersistenceFailure
// is returned.
type Session struct {
	mu        sync.Mutex
	log       *logger.Logger
	store     Persistence
	portfolio *types.Portfolio
	sections  *ordering.Manager[*types.Section]
	blocks    *ordering.Manager[*types.Block]
	themes    *theme.Tracker
}

// Open loads p into a session and persists any index repairs the load made.
func Open(ctx context.Context, p *types.Portfolio, store Persistence, baseLog *logger.Logger) (*Session, error) {
	if p == nil {
		return nil, fmt.Errorf("open session: %w", perrors.ErrNotFound)
	}
	s := &Session{
		log:       baseLog.With("component", "EditorSession", "portfolio_id", p.ID),
		store:     store,
		portfolio: p,
		sections:  ordering.NewManager[*types.Section](),
		blocks:    ordering.NewManager[*types.Block](),
		themes:    theme.NewTracker(theme.SelectionOf(p.ColorThemeID, p.FontThemeID)),
	}
	sections := make([]*types.Section, 0, len(p.Sections))
	for _, sec := range p.Sections {
		if sec != nil {
			sections = append(sections, sec)
		}
	}
	fixedSections := s.sections.Load(p.ID, sections)
	var fixedBlocks []*types.Block
	for _, sec := range sections {
		fixedBlocks = append(fixedBlocks, s.blocks.Load(sec.ID, render.SortedBlocks(sec.Blocks))...)
	}
	if len(fixedSections)+len(fixedBlocks) > 0 {
		s.log.Info("Open: repairing order indexes", "sections", len(fixedSections), "blocks", len(fixedBlocks))
		s.mu.Lock()
		err := s.persistReindex(ctx, fixedSections, fixedBlocks)
		s.mu.Unlock()
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

// Tree returns the portfolio with its sections and blocks in current order.
func (s *Session) Tree() *types.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.treeLocked()
}

func (s *Session) treeLocked() *types.Portfolio {
	sections := s.sections.Children(s.portfolio.ID)
	for _, sec := range sections {
		sec.Blocks = s.blocks.Children(sec.ID)
	}
	s.portfolio.Sections = sections
	return s.portfolio
}

func (s *Session) Compose(live *content.Live, rc theme.RenderContext) (render.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Compose(s.treeLocked(), live, rc)
}

func (s *Session) Section(sectionID uuid.UUID) (*types.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections.Get(sectionID)
}

func (s *Session) Block(blockID uuid.UUID) (*types.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks.Get(blockID)
}

func (s *Session) AddSection(ctx context.Context, title, layoutType string, style datatypes.JSON) (*types.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("add section: title required: %w", perrors.ErrInvalidArgument)
	}
	if !layout.Known(layoutType) {
		layoutType = layout.Default
	}
	sec := &types.Section{
		ID:          uuid.New(),
		PortfolioID: s.portfolio.ID,
		SectionKey:  slug.Make(title),
		Title:       title,
		IsEnabled:   true,
		LayoutType:  layoutType,
		Style:       style,
	}
	if _, err := s.sections.Insert(s.portfolio.ID, sec); err != nil {
		return nil, err
	}
	s.blocks.Load(sec.ID, nil)

	if err := s.store.CreateSection(ctx, sec); err != nil {
		return sec, s.persistFailed("AddSection", err, "section_id", sec.ID)
	}
	return sec, nil
}

func (s *Session) RemoveSection(ctx context.Context, sectionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, changed, err := s.sections.Remove(sectionID)
	if err != nil {
		return err
	}
	s.blocks.Drop(sectionID)

	var errs error
	if err := s.store.DeleteSection(ctx, sectionID); err != nil {
		errs = multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, s.persistReindex(ctx, changed, nil))
	if errs != nil {
		return s.persistFailed("RemoveSection", errs, "section_id", sectionID)
	}
	return nil
}

func (s *Session) MoveSection(ctx context.Context, sectionID uuid.UUID, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := move(s.sections, sectionID, dir)
	if err != nil {
		return err
	}
	if err := s.persistReindex(ctx, changed, nil); err != nil {
		return s.persistFailed("MoveSection", err, "section_id", sectionID)
	}
	return nil
}

func (s *Session) SetSectionEnabled(ctx context.Context, sectionID uuid.UUID, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.sections.SetEnabled(sectionID, enabled); err != nil {
		return err
	}
	if err := s.store.UpdateSection(ctx, sectionID, map[string]interface{}{"is_enabled": enabled}); err != nil {
		return s.persistFailed("SetSectionEnabled", err, "section_id", sectionID)
	}
	return nil
}

// UpdateSection applies title, layout and style edits. Order and visibility
// have their own operations.
func (s *Session) UpdateSection(ctx context.Context, sectionID uuid.UUID, title, layoutType *string, style datatypes.JSON) (*types.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.sections.Get(sectionID)
	if !ok {
		return nil, fmt.Errorf("update section %s: %w", sectionID, perrors.ErrNotFound)
	}
	fields := map[string]interface{}{}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, fmt.Errorf("update section: title required: %w", perrors.ErrInvalidArgument)
		}
		sec.Title = t
		fields["title"] = t
	}
	if layoutType != nil {
		lt := *layoutType
		if !layout.Known(lt) {
			lt = layout.Default
		}
		sec.LayoutType = lt
		fields["layout_type"] = lt
	}
	if style != nil {
		sec.Style = style
		fields["style"] = style
	}
	if len(fields) == 0 {
		return sec, nil
	}
	if err := s.store.UpdateSection(ctx, sectionID, fields); err != nil {
		return sec, s.persistFailed("UpdateSection", err, "section_id", sectionID)
	}
	return sec, nil
}

func (s *Session) AddBlock(ctx context.Context, sectionID uuid.UUID, blockType string, payload *content.Payload, style datatypes.JSON) (*types.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sections.Get(sectionID); !ok {
		return nil, fmt.Errorf("add block to %s: %w", sectionID, perrors.ErrNotFound)
	}
	if blockType != types.BlockTypeImage {
		blockType = types.BlockTypeText
	}
	var raw datatypes.JSON
	if payload != nil {
		enc, err := payload.Encode()
		if err != nil {
			return nil, err
		}
		raw = enc
	}
	b := &types.Block{
		ID:        uuid.New(),
		SectionID: sectionID,
		BlockType: blockType,
		Content:   raw,
		Style:     style,
	}
	if _, err := s.blocks.Insert(sectionID, b); err != nil {
		return nil, err
	}

	if err := s.store.CreateBlock(ctx, b); err != nil {
		return b, s.persistFailed("AddBlock", err, "block_id", b.ID)
	}
	return b, nil
}

func (s *Session) RemoveBlock(ctx context.Context, blockID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, changed, err := s.blocks.Remove(blockID)
	if err != nil {
		return err
	}
	var errs error
	if err := s.store.DeleteBlock(ctx, blockID); err != nil {
		errs = multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, s.persistReindex(ctx, nil, changed))
	if errs != nil {
		return s.persistFailed("RemoveBlock", errs, "block_id", blockID)
	}
	return nil
}

func (s *Session) MoveBlock(ctx context.Context, blockID uuid.UUID, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := move(s.blocks, blockID, dir)
	if err != nil {
		return err
	}
	if err := s.persistReindex(ctx, nil, changed); err != nil {
		return s.persistFailed("MoveBlock", err, "block_id", blockID)
	}
	return nil
}

func (s *Session) UpdateBlockContent(ctx context.Context, blockID uuid.UUID, payload *content.Payload, style datatypes.JSON) (*types.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blocks.Get(blockID)
	if !ok {
		return nil, fmt.Errorf("update block %s: %w", blockID, perrors.ErrNotFound)
	}
	fields := map[string]interface{}{}
	if payload != nil {
		raw, err := payload.Encode()
		if err != nil {
			return nil, err
		}
		b.Content = raw
		fields["content"] = raw
	}
	if style != nil {
		b.Style = style
		fields["style"] = style
	}
	if len(fields) == 0 {
		return b, nil
	}
	if err := s.store.UpdateBlock(ctx, blockID, fields); err != nil {
		return b, s.persistFailed("UpdateBlockContent", err, "block_id", blockID)
	}
	return b, nil
}

func (s *Session) SelectColorTheme(id *uuid.UUID) { s.themes.SelectColor(id) }
func (s *Session) SelectFontTheme(id *uuid.UUID)  { s.themes.SelectFont(id) }
func (s *Session) ThemeSelection() theme.Selection { return s.themes.Active() }

// SaveTheme sends one partial update with only the changed theme refs. An
// unchanged selection sends nothing. Failures are not retried and leave the
// selection pending.
func (s *Session) SaveTheme(ctx context.Context) (theme.ChangeSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.themes.Pending()
	if cs.Empty() {
		return cs, nil
	}
	if err := s.store.UpdatePortfolio(ctx, s.portfolio.ID, cs.Fields()); err != nil {
		return cs, s.persistFailed("SaveTheme", err)
	}
	s.themes.Commit(cs)
	if cs.ColorChanged {
		s.portfolio.ColorThemeID = cs.ColorThemeID
	}
	if cs.FontChanged {
		s.portfolio.FontThemeID = cs.FontThemeID
	}
	return cs, nil
}

func move[T ordering.Item](m *ordering.Manager[T], id uuid.UUID, dir Direction) ([]T, error) {
	if dir == Up {
		return m.MoveUp(id)
	}
	return m.MoveDown(id)
}

func (s *Session) persistReindex(ctx context.Context, sections []*types.Section, blocks []*types.Block) error {
	var errs error
	for _, sec := range sections {
		errs = multierr.Append(errs, s.store.UpdateSection(ctx, sec.ID, map[string]interface{}{"order_index": sec.OrderIndex}))
	}
	for _, b := range blocks {
		errs = multierr.Append(errs, s.store.UpdateBlock(ctx, b.ID, map[string]interface{}{"order_index": b.OrderIndex}))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", perrors.ErrPersistenceFailure, errs)
	}
	return nil
}

func (s *Session) persistFailed(op string, err error, kv ...interface{}) error {
	s.log.Warn(op+": persist failed, local change kept", append(kv, "error", err)...)
	if errors.Is(err, perrors.ErrPersistenceFailure) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, perrors.ErrPersistenceFailure, err)
}
