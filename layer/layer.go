// Package layer holds the static layer table and the active layer state.
package layer

import (
	"fmt"
	"sync/atomic"
)

// Count is number of layers compiled into keymap.
const Count = 4

// MaxLabel is the longest label that fits the status line after "Layer:".
const MaxLabel = 5

type Index uint8

// Layer is immutable description of one key mapping configuration.
// Purpose tells what the rotary encoder does while layer is active.
type Layer struct {
	Label   string
	Purpose string
}

type Table [Count]Layer

var Default = Table{
	{Label: "Base", Purpose: "KNOB SCROLL"},
	{Label: "Code", Purpose: "KNOB VOLUME"},
	{Label: "Vim", Purpose: "KNOB VOLUME"},
	{Label: "Tools", Purpose: "KNOB BRIGHT"},
}

func (self *Table) Get(i Index) Layer {
	if int(i) >= len(self) {
		return Layer{}
	}
	return self[i]
}

// Controller owns active layer index. Dispatcher writes and display task
// reads it, possibly from different goroutines.
type Controller struct {
	n       uint32
	current uint32
}

func NewController(n int) *Controller {
	if n <= 0 || n > 255 {
		panic(fmt.Sprintf("code error layer.NewController n=%d", n))
	}
	return &Controller{n: uint32(n)}
}

func (self *Controller) Len() int { return int(self.n) }

func (self *Controller) Current() Index {
	return Index(atomic.LoadUint32(&self.current))
}

// CycleNext moves to (current+1) mod N.
func (self *Controller) CycleNext() {
	for {
		old := atomic.LoadUint32(&self.current)
		if atomic.CompareAndSwapUint32(&self.current, old, (old+1)%self.n) {
			return
		}
	}
}

func (self *Controller) String() string {
	return fmt.Sprintf("layer=%d/%d", self.Current(), self.n)
}
