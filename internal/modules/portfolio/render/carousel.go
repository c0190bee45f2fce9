package render

import (
	"sync"

	"github.com/google/uuid"
)

// CarouselState keeps the visible image index per block. It is view state
// only and is never written back to a Block.
type CarouselState struct {
	mu  sync.Mutex
	idx map[uuid.UUID]int
}

func NewCarouselState() *CarouselState {
	return &CarouselState{idx: map[uuid.UUID]int{}}
}

func (c *CarouselState) Index(blockID uuid.UUID, total int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if total <= 0 {
		return 0
	}
	return c.idx[blockID] % total
}

func (c *CarouselState) Next(blockID uuid.UUID, total int) int {
	return c.step(blockID, total, 1)
}

func (c *CarouselState) Prev(blockID uuid.UUID, total int) int {
	return c.step(blockID, total, -1)
}

func (c *CarouselState) step(blockID uuid.UUID, total, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if total <= 0 {
		delete(c.idx, blockID)
		return 0
	}
	i := ((c.idx[blockID]+delta)%total + total) % total
	c.idx[blockID] = i
	return i
}

// Forget drops state for blocks that are no longer on screen.
func (c *CarouselState) Forget(blockIDs ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range blockIDs {
		delete(c.idx, id)
	}
}

func (c *CarouselState) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = map[uuid.UUID]int{}
}
