package render

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/content"
	"github.com/yungbote/portfolio-backend/internal/modules/portfolio/theme"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

func profileBlock(index int) *types.Block {
	return &types.Block{
		ID:         uuid.New(),
		BlockType:  types.BlockTypeText,
		OrderIndex: index,
		Content:    datatypes.JSON([]byte(`{"type":"profile","title":"me"}`)),
	}
}

func snapshotBlock(index int, name string) *types.Block {
	return &types.Block{
		ID:         uuid.New(),
		BlockType:  types.BlockTypeImage,
		OrderIndex: index,
		Content:    datatypes.JSON([]byte(`{"type":"activity","data_id":"x","data":{"activity_name":"` + name + `"}}`)),
	}
}

func blockIDs(doc Document) []uuid.UUID {
	var out []uuid.UUID
	for _, s := range doc.Sections {
		for _, e := range s.Layout.Entries() {
			out = append(out, e.Item.BlockID)
		}
	}
	return out
}

func TestEnabledOnlyScenario(t *testing.T) {
	first := &types.Section{ID: uuid.New(), Title: "Awards", OrderIndex: 0, IsEnabled: true, LayoutType: "default",
		Blocks: []*types.Block{snapshotBlock(0, "A"), snapshotBlock(1, "B")}}
	second := &types.Section{ID: uuid.New(), Title: "Projects", OrderIndex: 1, IsEnabled: false, LayoutType: "two_pictures_two_texts",
		Blocks: []*types.Block{snapshotBlock(0, "C")}}
	p := &types.Portfolio{ID: uuid.New(), Name: "Mine", Sections: []*types.Section{second, first}}

	doc, err := Compose(p, nil, theme.Activate(nil, nil))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	before := blockIDs(doc)
	if len(doc.Sections) != 1 || doc.VisibleBlocks() != 2 || len(before) != 2 {
		t.Fatalf("enabled-only: sections=%d visible=%d", len(doc.Sections), doc.VisibleBlocks())
	}

	second.SetEnabled(true)
	doc, err = Compose(p, nil, theme.Activate(nil, nil))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	after := blockIDs(doc)
	if len(after) != 3 {
		t.Fatalf("after enabling: want 3 blocks got=%d", len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("first section order disturbed at %d", i)
		}
	}
	if after[2] != second.Blocks[0].ID {
		t.Fatalf("enabled section blocks not appended")
	}
}

func TestComposeSplitsProfileAndKeepsCounts(t *testing.T) {
	profile := &types.Section{ID: uuid.New(), Title: "Profile", OrderIndex: 0, IsEnabled: true, LayoutType: "profile_header_left",
		Blocks: []*types.Block{profileBlock(0)}}
	broken := &types.Block{ID: uuid.New(), OrderIndex: 1, Content: datatypes.JSON([]byte(`nope`))}
	body := &types.Section{ID: uuid.New(), Title: "Body", OrderIndex: 1, IsEnabled: true,
		Blocks: []*types.Block{snapshotBlock(0, "ok"), broken}}
	p := &types.Portfolio{ID: uuid.New(), Sections: []*types.Section{profile, body}}

	doc, err := Compose(p, content.NewLive(nil, nil), theme.Activate(nil, nil))
	if !errors.Is(err, perrors.ErrMalformedContent) {
		t.Fatalf("Compose diagnostics: want ErrMalformedContent got=%v", err)
	}
	if len(doc.Profile) != 1 || len(doc.Sections) != 1 {
		t.Fatalf("Compose split: profile=%d sections=%d", len(doc.Profile), len(doc.Sections))
	}
	s := doc.Sections[0]
	if s.BlockCount != 2 || s.Visible != 1 || s.Layout.Len() != 1 {
		t.Fatalf("counts: block_count=%d visible=%d placed=%d", s.BlockCount, s.Visible, s.Layout.Len())
	}
}

func TestComposeNoEnabledSectionsIsEmpty(t *testing.T) {
	p := &types.Portfolio{ID: uuid.New(), Sections: []*types.Section{{ID: uuid.New(), IsEnabled: false}}}
	doc, err := Compose(p, nil, theme.Activate(nil, nil))
	if err != nil || !doc.Empty {
		t.Fatalf("Compose: empty=%v err=%v", doc.Empty, err)
	}
}

func TestIsCircular(t *testing.T) {
	cases := []struct {
		style string
		want  bool
	}{
		{`{"borderRadius":"50%"}`, true},
		{`{"border_radius":"100%"}`, true},
		{`{"borderRadius":true}`, true},
		{`{"borderRadius":"9999px"}`, true},
		{`{"borderRadius":9999}`, true},
		{`{"borderRadius":"full"}`, true},
		{`{"borderRadius":"8px"}`, false},
		{`{}`, false},
		{`broken`, false},
		{``, false},
	}
	for _, tc := range cases {
		t.Run(tc.style, func(t *testing.T) {
			if got := IsCircular([]byte(tc.style)); got != tc.want {
				t.Fatalf("IsCircular(%s): want=%v got=%v", tc.style, tc.want, got)
			}
		})
	}
}

func TestCarouselWraps(t *testing.T) {
	c := NewCarouselState()
	id := uuid.New()
	if got := c.Prev(id, 3); got != 2 {
		t.Fatalf("Prev from 0: want=2 got=%d", got)
	}
	if got := c.Next(id, 3); got != 0 {
		t.Fatalf("Next wrap: want=0 got=%d", got)
	}
	c.Next(id, 3)
	c.Forget(id)
	if got := c.Index(id, 3); got != 0 {
		t.Fatalf("Index after Forget: want=0 got=%d", got)
	}
}
