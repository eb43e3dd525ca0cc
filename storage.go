package ciggurat

import "unsafe"

// chunkByteSize is the size of one storage chunk. A chunk holds
// floor(chunkByteSize / familySize) rows.
const chunkByteSize = 16 * 1024

// chunk is one fixed-size, zero-filled allocation of rows. Rows are
// appended contiguously from the base; count is the number in use.
// A virtual chunk (base == nil) carries rows for zero-size families;
// its row pointers are never dereferenced.
type chunk struct {
	buf   []byte         // backing allocation, keeps the rows reachable
	base  unsafe.Pointer // aligned to the family alignment
	count int
}

// newChunk allocates a zero-filled chunk whose base is aligned to the
// family alignment. The byte slice is over-allocated so the base can be
// pushed up to the next aligned address.
func newChunk(l *layout) *chunk {
	size := uintptr(chunkByteSize)
	if l.familySize > size {
		size = l.familySize
	}
	buf := make([]byte, size+l.alignment-1)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	off := (l.alignment - addr%l.alignment) % l.alignment
	return &chunk{buf: buf, base: unsafe.Pointer(&buf[off])}
}

// row returns a pointer to row i, or nil for virtual chunks.
func (c *chunk) row(l *layout, i int) unsafe.Pointer {
	if c.base == nil {
		return nil
	}
	return unsafe.Add(c.base, uintptr(i)*l.familySize)
}

// storage owns the rows for one component-set mask: the packed layout,
// the chunk list (newest first), the recycled-row stack and the set of
// matching systems.
type storage struct {
	mask     bitmask256
	layout   layout
	chunks   []*chunk
	recycled []unsafe.Pointer // LIFO stack of free row slots
	systems  []*system        // matching systems, registration order
}

func newStorage(reg *typeRegistry, mask bitmask256) *storage {
	return &storage{
		mask:   mask,
		layout: computeLayout(reg, mask),
	}
}

// rowsPerChunk returns a chunk's row capacity, or 0 for zero-size
// families (which use virtual chunks instead).
func (s *storage) rowsPerChunk() int {
	if s.layout.familySize == 0 {
		return 0
	}
	rows := chunkByteSize / int(s.layout.familySize)
	if rows == 0 {
		rows = 1 // oversize family: newChunk grows the buffer to fit one row
	}
	return rows
}

// region describes a contiguous run of reserved rows.
type region struct {
	base     unsafe.Pointer
	rows     int
	recycled bool // drawn from the recycled-row stack
}

// regionRequest is the reserve phase of a two-phase row allocation.
// Reserving mutates nothing observable beyond prepending fresh chunks
// with a zero count; commit applies the row counts and truncates the
// recycled stack, abort unlinks the prepended chunks. Either way the
// recycled stack never holds a row that is also live.
type regionRequest struct {
	storage        *storage
	regions        []region
	pending        []pendingRows
	newRecycledLen int // recycled stack length after commit
	newChunks      int // chunks prepended during reserve
}

// pendingRows is a row count to apply to a chunk on commit.
type pendingRows struct {
	chunk *chunk
	rows  int
}

// request reserves n rows: recycled slots first (LIFO), then the free
// tail of the head chunk, then fresh chunks prepended to the list.
func (s *storage) request(n int) *regionRequest {
	req := &regionRequest{storage: s, newRecycledLen: len(s.recycled)}
	if n <= 0 {
		return req
	}

	if s.layout.familySize == 0 {
		// Zero-size family: a single virtual chunk covers the request so
		// systems still run once per row.
		c := &chunk{}
		s.chunks = append([]*chunk{c}, s.chunks...)
		req.newChunks = 1
		req.regions = append(req.regions, region{rows: n})
		req.pending = append(req.pending, pendingRows{chunk: c, rows: n})
		return req
	}

	for n > 0 && req.newRecycledLen > 0 {
		req.newRecycledLen--
		req.regions = append(req.regions, region{base: s.recycled[req.newRecycledLen], rows: 1, recycled: true})
		n--
	}

	capacity := s.rowsPerChunk()
	if n > 0 && len(s.chunks) > 0 {
		head := s.chunks[0]
		if free := capacity - head.count; free > 0 {
			take := min(free, n)
			req.regions = append(req.regions, region{base: head.row(&s.layout, head.count), rows: take})
			req.pending = append(req.pending, pendingRows{chunk: head, rows: take})
			n -= take
		}
	}
	for n > 0 {
		c := newChunk(&s.layout)
		s.chunks = append([]*chunk{c}, s.chunks...)
		req.newChunks++
		take := min(capacity, n)
		req.regions = append(req.regions, region{base: c.row(&s.layout, 0), rows: take})
		req.pending = append(req.pending, pendingRows{chunk: c, rows: take})
		n -= take
	}
	return req
}

// commit finalizes the reservation.
func (r *regionRequest) commit() {
	for _, p := range r.pending {
		p.chunk.count += p.rows
	}
	r.storage.recycled = r.storage.recycled[:r.newRecycledLen]
}

// abort releases the reservation. Recycled slots were never popped and
// chunk counts were never bumped, so only the fresh chunks go.
func (r *regionRequest) abort() {
	r.storage.chunks = r.storage.chunks[r.newChunks:]
}
