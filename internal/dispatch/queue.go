package dispatch

import (
	"container/heap"

	"wyrmgate/internal/command"
)

// pending wraps a queued command with its enqueue sequence number. Priority
// class sorts first; the sequence breaks ties within a class so equal-time
// submissions keep submission order.
type pending struct {
	cmd command.Command
	seq uint64
}

type commandQueue []pending

func (q commandQueue) Len() int { return len(q) }

func (q commandQueue) Less(i, j int) bool {
	if q[i].cmd.Priority() != q[j].cmd.Priority() {
		return q[i].cmd.Priority() < q[j].cmd.Priority()
	}
	if !q[i].cmd.CreatedAt().Equal(q[j].cmd.CreatedAt()) {
		return q[i].cmd.CreatedAt().Before(q[j].cmd.CreatedAt())
	}
	return q[i].seq < q[j].seq
}

func (q commandQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *commandQueue) Push(x any) {
	*q = append(*q, x.(pending))
}

func (q *commandQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = pending{}
	*q = old[:n-1]
	return item
}

var _ heap.Interface = (*commandQueue)(nil)
