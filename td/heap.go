/******************************************************************************************[Heap.h]
Copyright (c) 2003-2006, Niklas Een, Niklas Sorensson
Copyright (c) 2007-2010, Niklas Sorensson

Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
associated documentation files (the "Software"), to deal in the Software without restriction,
including without limitation the rights to use, copy, modify, merge, publish, distribute,
sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all copies or
substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT
OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
**************************************************************************************************/

package td

// A heap of vertices keyed by score, with support for decrease/increase key. This is
// strongly inspired from Minisat's mtl/Heap.h.
// It replaces buckets when scores can be too large to index an array with.

type heapQueue struct {
	score   []int    // Score of each vertex, as last pushed.
	content []Vertex // Actual content.
	indices []int    // Reverse queue, i.e position of each vertex in content; -1 means absence.
}

func newHeapQueue(n int) *heapQueue {
	q := &heapQueue{
		score:   make([]int, n),
		content: make([]Vertex, 0, n),
		indices: make([]int, n),
	}
	for i := range q.indices {
		q.indices[i] = -1
	}
	return q
}

// lt orders by score, then by vertex so that ties go to the lowest vertex.
func (q *heapQueue) lt(a, b Vertex) bool {
	return q.score[a] < q.score[b] || (q.score[a] == q.score[b] && a < b)
}

// Traversal functions.
func left(i int) int   { return i*2 + 1 }
func right(i int) int  { return (i + 1) * 2 }
func parent(i int) int { return (i - 1) >> 1 }

func (q *heapQueue) percolateUp(i int) {
	x := q.content[i]
	p := parent(i)
	for i != 0 && q.lt(x, q.content[p]) {
		q.content[i] = q.content[p]
		q.indices[q.content[p]] = i
		i = p
		p = parent(p)
	}
	q.content[i] = x
	q.indices[x] = i
}

func (q *heapQueue) percolateDown(i int) {
	x := q.content[i]
	for left(i) < len(q.content) {
		var child int
		if right(i) < len(q.content) && q.lt(q.content[right(i)], q.content[left(i)]) {
			child = right(i)
		} else {
			child = left(i)
		}
		if !q.lt(q.content[child], x) {
			break
		}
		q.content[i] = q.content[child]
		q.indices[q.content[i]] = i
		i = child
	}
	q.content[i] = x
	q.indices[x] = i
}

func (q *heapQueue) len() int { return len(q.content) }

func (q *heapQueue) contains(v Vertex) bool {
	return q.indices[v] >= 0
}

// push inserts v with the given score, or moves it if it is already there.
func (q *heapQueue) push(v Vertex, score int) {
	if q.contains(v) {
		old := q.score[v]
		q.score[v] = score
		if score < old {
			q.percolateUp(q.indices[v])
		} else {
			q.percolateDown(q.indices[v])
		}
		return
	}
	q.score[v] = score
	q.indices[v] = len(q.content)
	q.content = append(q.content, v)
	q.percolateUp(q.indices[v])
}

func (q *heapQueue) pop() (Vertex, int, bool) {
	if len(q.content) == 0 {
		return 0, 0, false
	}
	x := q.content[0]
	last := len(q.content) - 1
	q.content[0] = q.content[last]
	q.indices[q.content[0]] = 0
	q.indices[x] = -1
	q.content = q.content[:last]
	if len(q.content) > 1 {
		q.percolateDown(0)
	}
	return x, q.score[x], true
}
