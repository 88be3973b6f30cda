// Package game holds the play loop: a queue of boards, the controller that
// turns semantic inputs into moves, and a depth-ordered scene.
package game

import (
	"fmt"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/ports"
)

// Container is a queue of boards refilled from the master pool map. Every
// refill samples afresh, so a board may repeat across refills but not
// within one.
type Container struct {
	sampler ports.Sampler
	pools   domain.PoolMap
	cfg     domain.SetConfig
	queue   []domain.Board
}

func NewContainer(s ports.Sampler, pools domain.PoolMap, cfg domain.SetConfig) *Container {
	return &Container{sampler: s, pools: pools, cfg: cfg}
}

// Refill appends a fresh set of boards to the queue.
func (c *Container) Refill() error {
	boards, err := c.sampler.Sample(c.pools, c.cfg)
	if err != nil {
		return fmt.Errorf("refill boards: %w", err)
	}
	c.queue = append(c.queue, boards...)
	return nil
}

// Next pops the head of the queue, refilling once when it is empty.
func (c *Container) Next() (domain.Board, error) {
	if len(c.queue) == 0 {
		if err := c.Refill(); err != nil {
			return domain.Board{}, err
		}
		if len(c.queue) == 0 {
			return domain.Board{}, fmt.Errorf("refill boards: sampler returned no boards")
		}
	}
	b := c.queue[0]
	c.queue = c.queue[1:]
	return b, nil
}

// Len is the number of queued boards.
func (c *Container) Len() int { return len(c.queue) }
