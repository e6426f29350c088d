package debugger

import (
	"fmt"
	"sync"

	"github.com/lookbusy1344/rv32-sdb/vm"
)

// watchSlot is one entry of the fixed-size watchpoint pool. next links
// the slot into whichever intrusive list currently owns it (the free
// list or the active list); -1 terminates a list. Index in the pool
// array is the watchpoint's ID, and that ID is stable across release
// and reuse: unlike a map keyed by an ever-incrementing counter, Delete
// followed by Add can hand the same ID back out.
type watchSlot struct {
	inUse      bool
	expr       string
	lastValue  uint32
	next       int
}

// WatchpointPool is the fixed 32-slot watchpoint pool. It mirrors the
// reference monitor's wp_pool: a static array plus two singly-linked
// lists threaded through it by index rather than by pointer, one for
// free slots and one for active (in-use) watchpoints. New watchpoints
// are pushed at the head of the active list, so Info lists them newest
// first.
type WatchpointPool struct {
	mu    sync.Mutex
	slots [WatchpointPoolSize]watchSlot
	free  int // head of the free list, -1 if the pool is exhausted
	head  int // head of the active list, -1 if none are active
}

// NewWatchpointPool builds a pool with all slots on the free list, in
// index order, id == index — matching init_wp_pool.
func NewWatchpointPool() *WatchpointPool {
	p := &WatchpointPool{head: -1}
	for i := range p.slots {
		if i == WatchpointPoolSize-1 {
			p.slots[i].next = -1
		} else {
			p.slots[i].next = i + 1
		}
	}
	p.free = 0
	return p
}

// alloc pops the head of the free list and pushes it onto the active
// list, returning its slot index. It panics if the pool is exhausted:
// a fixed 32-slot pool has no growth path, and the reference monitor
// treats exhaustion as a fatal assertion rather than a recoverable
// error.
func (p *WatchpointPool) alloc() int {
	if p.free == -1 {
		panic("debugger: watchpoint pool exhausted")
	}
	id := p.free
	p.free = p.slots[id].next

	p.slots[id].next = p.head
	p.head = id
	p.slots[id].inUse = true
	return id
}

// release removes id from the active list (a linear scan, since the
// active list is singly linked) and returns it to the head of the free
// list.
func (p *WatchpointPool) release(id int) bool {
	if id < 0 || id >= WatchpointPoolSize || !p.slots[id].inUse {
		return false
	}

	if p.head == id {
		p.head = p.slots[id].next
	} else {
		prev := p.head
		for prev != -1 && p.slots[prev].next != id {
			prev = p.slots[prev].next
		}
		if prev == -1 {
			return false
		}
		p.slots[prev].next = p.slots[id].next
	}

	p.slots[id].inUse = false
	p.slots[id].expr = ""
	p.slots[id].lastValue = 0
	p.slots[id].next = p.free
	p.free = id
	return true
}

// Add evaluates expr against machine to seed its initial value, then
// allocates a slot and returns its ID. expr is truncated to MaxExprLen
// characters before storage and evaluation, matching add_watchpoint's
// strncpy-then-evaluate behavior; the expression must evaluate cleanly
// after truncation, or it is rejected rather than installed, matching
// add_watchpoint's "Invalid expression" path.
func (p *WatchpointPool) Add(machine *vm.VM, expr string) (int, error) {
	if len(expr) > MaxExprLen {
		expr = expr[:MaxExprLen]
	}

	value, err := NewEvaluator(machine).Eval(expr)
	if err != nil {
		return 0, fmt.Errorf("watchpoint: invalid expression: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.alloc()
	p.slots[id].expr = expr
	p.slots[id].lastValue = value
	return id, nil
}

// Delete releases watchpoint id. It errors if no such watchpoint is
// active.
func (p *WatchpointPool) Delete(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.release(id) {
		return fmt.Errorf("watchpoint: no watchpoint number %d", id)
	}
	return nil
}

// WatchpointInfo is a read-only snapshot of one active watchpoint, in
// the order Info should list them.
type WatchpointInfo struct {
	ID        int
	Expr      string
	LastValue uint32
}

// Info lists all active watchpoints in reverse order of addition
// (newest first, since the active list is pushed at the head —
// matching info_watchpoints, which walks that same list).
func (p *WatchpointPool) Info() []WatchpointInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	var result []WatchpointInfo
	for i := p.head; i != -1; i = p.slots[i].next {
		result = append(result, WatchpointInfo{
			ID:        i,
			Expr:      p.slots[i].expr,
			LastValue: p.slots[i].lastValue,
		})
	}
	return result
}

// WatchpointChange describes one watchpoint whose value differed from
// its last recorded value at a CheckAll call.
type WatchpointChange struct {
	ID       int
	Expr     string
	OldValue uint32
	NewValue uint32
}

// CheckAll re-evaluates every active watchpoint against machine and
// returns those whose value changed, updating each one's recorded
// value along the way. A watchpoint whose expression fails to
// re-evaluate (e.g. a register that no longer makes sense) is skipped
// silently rather than reported, matching check_watchpoints.
func (p *WatchpointPool) CheckAll(machine *vm.VM) []WatchpointChange {
	p.mu.Lock()
	defer p.mu.Unlock()

	eval := NewEvaluator(machine)
	var changes []WatchpointChange
	for i := p.head; i != -1; i = p.slots[i].next {
		newValue, err := eval.Eval(p.slots[i].expr)
		if err != nil {
			continue
		}
		if newValue != p.slots[i].lastValue {
			changes = append(changes, WatchpointChange{
				ID:       i,
				Expr:     p.slots[i].expr,
				OldValue: p.slots[i].lastValue,
				NewValue: newValue,
			})
			p.slots[i].lastValue = newValue
		}
	}
	return changes
}

// Count returns the number of active watchpoints.
func (p *WatchpointPool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for i := p.head; i != -1; i = p.slots[i].next {
		n++
	}
	return n
}
