package td

// A scheduler hands out the vertex of minimal score, the lowest vertex among equal scores.
// Scores it stores may be stale: revalidating them is the caller's job.
type scheduler interface {
	push(v Vertex, score int)
	pop() (v Vertex, score int, ok bool)
	len() int
}

// SchedulerKind selects the structure backing the elimination scheduler.
// All kinds produce exactly the same elimination order.
type SchedulerKind byte

const (
	// SchedulerAuto uses buckets unless the heuristic's score range is too large for them.
	SchedulerAuto = SchedulerKind(iota)
	// SchedulerBucket always uses an array of score buckets.
	SchedulerBucket
	// SchedulerHeap always uses a binary heap keyed by score.
	SchedulerHeap
)

// maxBuckets is the largest score range SchedulerAuto allocates buckets for.
const maxBuckets = 1 << 20

func (k SchedulerKind) String() string {
	switch k {
	case SchedulerAuto:
		return "auto"
	case SchedulerBucket:
		return "bucket"
	case SchedulerHeap:
		return "heap"
	default:
		panic("invalid scheduler kind")
	}
}

func newScheduler(kind SchedulerKind, n, maxScore int) scheduler {
	if kind == SchedulerHeap || (kind == SchedulerAuto && maxScore > maxBuckets) {
		return newHeapQueue(n)
	}
	return &bucketQueue{}
}

// bucketQueue is an array of buckets indexed by score, each one holding vertices in a min-heap.
// The cursor is the lowest score that may hold a vertex; it moves forward while popping,
// and back only when a vertex is pushed below it.
type bucketQueue struct {
	buckets []vertexHeap
	cursor  int
	size    int
}

func (q *bucketQueue) len() int { return q.size }

func (q *bucketQueue) push(v Vertex, score int) {
	for len(q.buckets) <= score {
		q.buckets = append(q.buckets, nil)
	}
	q.buckets[score].push(v)
	if q.size == 0 || score < q.cursor {
		q.cursor = score
	}
	q.size++
}

func (q *bucketQueue) pop() (Vertex, int, bool) {
	if q.size == 0 {
		return 0, 0, false
	}
	for len(q.buckets[q.cursor]) == 0 {
		q.cursor++
	}
	q.size--
	return q.buckets[q.cursor].pop(), q.cursor, true
}

// A vertexHeap is a min-heap of vertices.
//
// The code is identical to https://pkg.go.dev/container/heap but replaces interfaces with concrete
// type to avoid memory overhead.
type vertexHeap []Vertex

func (h *vertexHeap) less(i, j int) bool { return (*h)[i] < (*h)[j] }
func (h *vertexHeap) swap(i, j int)      { (*h)[i], (*h)[j] = (*h)[j], (*h)[i] }

func (h *vertexHeap) push(v Vertex) {
	*h = append(*h, v)
	h.up(len(*h) - 1)
}

func (h *vertexHeap) pop() Vertex {
	n := len(*h) - 1
	h.swap(0, n)
	h.down(0, n)
	v := (*h)[n]
	*h = (*h)[:n]
	return v
}

func (h *vertexHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *vertexHeap) down(i, n int) {
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
}
