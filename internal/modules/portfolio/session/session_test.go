package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/ordering"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	"github.com/yungbote/portfolio-backend/internal/pkg/debounce"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type call struct {
	op     string
	id     uuid.UUID
	fields map[string]interface{}
}

type fakeStore struct {
	mu    sync.Mutex
	calls []call
	fail  error
}

func (f *fakeStore) record(op string, id uuid.UUID, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, id: id, fields: fields})
	return f.fail
}

func (f *fakeStore) CreateSection(ctx context.Context, s *types.Section) error {
	return f.record("CreateSection", s.ID, nil)
}
func (f *fakeStore) UpdateSection(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return f.record("UpdateSection", id, fields)
}
func (f *fakeStore) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return f.record("DeleteSection", id, nil)
}
func (f *fakeStore) CreateBlock(ctx context.Context, b *types.Block) error {
	return f.record("CreateBlock", b.ID, nil)
}
func (f *fakeStore) UpdateBlock(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return f.record("UpdateBlock", id, fields)
}
func (f *fakeStore) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	return f.record("DeleteBlock", id, nil)
}
func (f *fakeStore) UpdatePortfolio(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return f.record("UpdatePortfolio", id, fields)
}

func (f *fakeStore) ops() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeStore) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func openEmpty(t *testing.T, store *fakeStore) *Session {
	t.Helper()
	p := &types.Portfolio{ID: uuid.New(), Name: "mine"}
	s, err := Open(context.Background(), p, store, testLogger(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenRepairsIndexes(t *testing.T) {
	store := &fakeStore{}
	p := &types.Portfolio{ID: uuid.New(), Sections: []*types.Section{
		{ID: uuid.New(), Title: "a", OrderIndex: 3},
		{ID: uuid.New(), Title: "b", OrderIndex: 7},
	}}
	s, err := Open(context.Background(), p, store, testLogger(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !ordering.Dense(s.Tree().Sections) {
		t.Fatalf("Open: indexes not dense")
	}
	if len(store.ops()) != 2 {
		t.Fatalf("Open: want 2 repair writes got=%d", len(store.ops()))
	}
}

func TestStructuralMutationsPersistReindex(t *testing.T) {
	store := &fakeStore{}
	s := openEmpty(t, store)
	ctx := context.Background()

	a, _ := s.AddSection(ctx, "About", "default", nil)
	b, _ := s.AddSection(ctx, "Awards", "two_pictures_two_texts", nil)
	c, _ := s.AddSection(ctx, "Works", "weird", nil)
	if c.LayoutType != "default" || c.SectionKey != "works" {
		t.Fatalf("AddSection: layout=%q key=%q", c.LayoutType, c.SectionKey)
	}

	store.reset()
	if err := s.RemoveSection(ctx, a.ID); err != nil {
		t.Fatalf("RemoveSection: %v", err)
	}
	ops := store.ops()
	if len(ops) != 3 || ops[0].op != "DeleteSection" {
		t.Fatalf("RemoveSection ops: %+v", ops)
	}
	if b.OrderIndex != 0 || c.OrderIndex != 1 {
		t.Fatalf("RemoveSection reindex: b=%d c=%d", b.OrderIndex, c.OrderIndex)
	}

	if err := s.RemoveSection(ctx, a.ID); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("RemoveSection twice: want ErrNotFound got=%v", err)
	}

	store.reset()
	if err := s.MoveSection(ctx, c.ID, Up); err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	if len(store.ops()) != 2 || c.OrderIndex != 0 {
		t.Fatalf("MoveSection: ops=%d c=%d", len(store.ops()), c.OrderIndex)
	}

	store.reset()
	if err := s.SetSectionEnabled(ctx, b.ID, false); err != nil {
		t.Fatalf("SetSectionEnabled: %v", err)
	}
	ops = store.ops()
	if len(ops) != 1 || ops[0].fields["is_enabled"] != false || b.OrderIndex != 1 {
		t.Fatalf("SetSectionEnabled: ops=%+v index=%d", ops, b.OrderIndex)
	}
}

func TestBlocksAndContent(t *testing.T) {
	store := &fakeStore{}
	s := openEmpty(t, store)
	ctx := context.Background()

	sec, _ := s.AddSection(ctx, "Works", "default", nil)
	if _, err := s.AddBlock(ctx, uuid.New(), "text", nil, nil); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("AddBlock to missing section: want ErrNotFound got=%v", err)
	}
	b1, err := s.AddBlock(ctx, sec.ID, "image", &content.Payload{Type: content.KindProfile, Title: "me"}, nil)
	if err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	b2, _ := s.AddBlock(ctx, sec.ID, "text", nil, nil)
	if b1.OrderIndex != 0 || b2.OrderIndex != 1 {
		t.Fatalf("AddBlock indexes: %d %d", b1.OrderIndex, b2.OrderIndex)
	}

	if err := s.MoveBlock(ctx, b2.ID, Up); err != nil {
		t.Fatalf("MoveBlock: %v", err)
	}
	if err := s.MoveBlock(ctx, b2.ID, Up); !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("MoveBlock past top: want ErrInvalidArgument got=%v", err)
	}

	upd, err := s.UpdateBlockContent(ctx, b2.ID, &content.Payload{Type: content.KindWorking, DataID: "w1",
		Data: map[string]any{"working_name": "Site"}}, datatypes.JSON([]byte(`{"borderRadius":"50%"}`)))
	if err != nil {
		t.Fatalf("UpdateBlockContent: %v", err)
	}
	item, err := content.Resolve(upd, nil)
	if err != nil || item.Name != "Site" {
		t.Fatalf("Resolve updated block: item=%+v err=%v", item, err)
	}

	if err := s.RemoveBlock(ctx, b2.ID); err != nil {
		t.Fatalf("RemoveBlock: %v", err)
	}
	if b1.OrderIndex != 0 || len(s.Tree().Sections[0].Blocks) != 1 {
		t.Fatalf("RemoveBlock: b1=%d blocks=%d", b1.OrderIndex, len(s.Tree().Sections[0].Blocks))
	}
}

func TestPersistenceFailureKeepsLocalChange(t *testing.T) {
	store := &fakeStore{}
	s := openEmpty(t, store)
	ctx := context.Background()
	sec, _ := s.AddSection(ctx, "About", "default", nil)

	store.fail = errors.New("network down")
	if err := s.SetSectionEnabled(ctx, sec.ID, false); !errors.Is(err, perrors.ErrPersistenceFailure) {
		t.Fatalf("SetSectionEnabled: want ErrPersistenceFailure got=%v", err)
	}
	if got, _ := s.Section(sec.ID); got.IsEnabled {
		t.Fatalf("local change discarded after failure")
	}

	added, err := s.AddSection(ctx, "Works", "default", nil)
	if !errors.Is(err, perrors.ErrPersistenceFailure) || added == nil {
		t.Fatalf("AddSection: want section + ErrPersistenceFailure got=%v %v", added, err)
	}
	if len(s.Tree().Sections) != 2 {
		t.Fatalf("AddSection failure dropped local section")
	}
}

func TestSaveThemeIsDifferential(t *testing.T) {
	store := &fakeStore{}
	color, font, font2 := uuid.New(), uuid.New(), uuid.New()
	p := &types.Portfolio{ID: uuid.New(), ColorThemeID: &color, FontThemeID: &font}
	s, err := Open(context.Background(), p, store, testLogger(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()

	if cs, err := s.SaveTheme(ctx); err != nil || !cs.Empty() || len(store.ops()) != 0 {
		t.Fatalf("SaveTheme unchanged: cs=%+v err=%v ops=%d", cs, err, len(store.ops()))
	}

	s.SelectFontTheme(&font2)
	// an unrelated edit must not revert the pending font choice
	if _, err := s.AddSection(ctx, "Other", "default", nil); err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	store.reset()

	store.fail = errors.New("timeout")
	if _, err := s.SaveTheme(ctx); !errors.Is(err, perrors.ErrPersistenceFailure) {
		t.Fatalf("SaveTheme failure: %v", err)
	}
	if len(store.ops()) != 1 {
		t.Fatalf("SaveTheme retried: ops=%d", len(store.ops()))
	}

	store.fail = nil
	store.reset()
	cs, err := s.SaveTheme(ctx)
	if err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	ops := store.ops()
	if len(ops) != 1 || len(ops[0].fields) != 1 || ops[0].fields["font_theme_id"] != font2 {
		t.Fatalf("SaveTheme ops: %+v", ops)
	}
	if !cs.FontChanged || cs.ColorChanged || *p.FontThemeID != font2 {
		t.Fatalf("SaveTheme result: %+v", cs)
	}
	if cs, _ := s.SaveTheme(ctx); !cs.Empty() {
		t.Fatalf("SaveTheme after commit: want empty got=%+v", cs)
	}
}

func TestComposeUsesSessionTree(t *testing.T) {
	store := &fakeStore{}
	s := openEmpty(t, store)
	ctx := context.Background()
	sec, _ := s.AddSection(ctx, "Works", "default", nil)
	s.AddBlock(ctx, sec.ID, "text", &content.Payload{Type: content.KindActivity, DataID: "x", Data: map[string]any{"activity_name": "A"}}, nil)
	s.AddBlock(ctx, sec.ID, "text", &content.Payload{Type: content.KindActivity, DataID: "gone"}, nil)

	doc, err := s.Compose(nil, theme.Activate(nil, nil))
	if !errors.Is(err, perrors.ErrDanglingReference) {
		t.Fatalf("Compose diagnostics: %v", err)
	}
	if doc.VisibleBlocks() != 1 || doc.Sections[0].BlockCount != 2 {
		t.Fatalf("Compose: visible=%d count=%d", doc.VisibleBlocks(), doc.Sections[0].BlockCount)
	}
}

func TestNameCheckSingleFlight(t *testing.T) {
	var calls int32
	got := make(chan debounce.Result[bool], 4)
	nc := NewNameCheck(debounce.MinDelay, func(ctx context.Context, value string) (bool, error) {
		atomic.AddInt32(&calls, 1)
		return value == "G1234567", nil
	}, func(r debounce.Result[bool]) { got <- r })
	defer nc.Stop()

	typed := ""
	for _, ch := range "G1234567" {
		typed += string(ch)
		nc.Type(typed)
	}
	select {
	case r := <-got:
		if r.Input != "G1234567" || !r.Value {
			t.Fatalf("NameCheck result: %+v", r)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("NameCheck: no result")
	}
	if atomic.LoadInt32(&calls) != 1 || nc.Last().Input != "G1234567" {
		t.Fatalf("NameCheck: calls=%d last=%+v", calls, nc.Last())
	}
}
