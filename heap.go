package kernel

import "encoding/binary"

const (
	heapAlignment   = 16
	heapAlignOffset = 12 // matches the TCB layout's leading header word
	heapHeaderBytes = 4
)

// Block is a handle to a previously allocated region: the bytes
// themselves, plus enough bookkeeping for Free to locate the region's
// header without requiring raw pointer arithmetic.
type Block struct {
	Bytes  []byte
	offset int // payload offset within the owning Heap's arena
}

// freeBlock is the header a freed block carries while parked on the
// free list: the doubly-linked list of exact-size blocks available for
// reuse, threaded through the block's own storage.
type freeBlock struct {
	next, prev int // payload offset into Heap.arena, -1 for none
}

// Heap is a bump allocator over a caller-supplied byte arena, with
// free-list reuse for exact-size blocks. It is not thread-safe: callers
// must hold the kernel's interrupt mask around Alloc/Free, exactly as
// the reference allocator requires.
type Heap struct {
	arena    []byte
	next     int // offset of the next unused byte
	freeHead int // offset of the first free block, -1 if none
}

// NewHeap creates a Heap over buf, aligning the first allocation offset
// to the configured alignment (16 bytes, offset 12 — consistent with
// the reference allocator, chosen so headers land at a predictable
// spot relative to 16-byte-aligned payloads).
func NewHeap(buf []byte) *Heap {
	h := &Heap{arena: buf, freeHead: -1}
	for h.next%heapAlignment != heapAlignOffset {
		h.next++
	}
	return h
}

// Alloc returns a size-byte Block. It first tries to satisfy the
// request from the free list (an exact-size match); failing that, it
// writes a 4-byte size header and bumps the arena pointer past the
// header and the payload, realigning afterward. Returns the zero Block
// (nil Bytes) on exhaustion; callers in this package route that through
// Kernel.fault, matching the reference allocator's "halt" behavior.
func (h *Heap) Alloc(size int) Block {
	if off, ok := h.takeFree(size); ok {
		return Block{Bytes: h.arena[off : off+size], offset: off}
	}

	start := h.next
	need := heapHeaderBytes + size
	if start+need > len(h.arena) {
		return Block{}
	}
	binary.LittleEndian.PutUint32(h.arena[start:], uint32(size))
	payload := start + heapHeaderBytes
	h.next = payload + size
	for h.next%heapAlignment != heapAlignOffset {
		h.next++
	}
	return Block{Bytes: h.arena[payload : payload+size], offset: payload}
}

// takeFree searches the free list for a block whose recorded size
// equals size, unlinking and returning its payload offset if found.
func (h *Heap) takeFree(size int) (int, bool) {
	for off := h.freeHead; off != -1; {
		fb := h.readFreeBlock(off)
		if h.blockSize(off) == size {
			h.unlinkFree(off, fb)
			return off, true
		}
		off = fb.next
	}
	return 0, false
}

// blockSize reads the size header immediately preceding a payload
// offset.
func (h *Heap) blockSize(payloadOff int) int {
	return int(binary.LittleEndian.Uint32(h.arena[payloadOff-heapHeaderBytes:]))
}

// Free pushes b onto the free list. No coalescing is performed.
func (h *Heap) Free(b Block) {
	off := b.offset
	fb := freeBlock{next: h.freeHead, prev: -1}
	h.writeFreeBlock(off, fb)
	if h.freeHead != -1 {
		old := h.readFreeBlock(h.freeHead)
		old.prev = off
		h.writeFreeBlock(h.freeHead, old)
	}
	h.freeHead = off
}

func (h *Heap) unlinkFree(off int, fb freeBlock) {
	if fb.prev == -1 {
		h.freeHead = fb.next
		if h.freeHead != -1 {
			next := h.readFreeBlock(h.freeHead)
			next.prev = -1
			h.writeFreeBlock(h.freeHead, next)
		}
		return
	}
	prev := h.readFreeBlock(fb.prev)
	prev.next = fb.next
	h.writeFreeBlock(fb.prev, prev)
	if fb.next != -1 {
		next := h.readFreeBlock(fb.next)
		next.prev = fb.prev
		h.writeFreeBlock(fb.next, next)
	}
}

func (h *Heap) readFreeBlock(off int) freeBlock {
	return freeBlock{
		next: int(int32(binary.LittleEndian.Uint32(h.arena[off:]))),
		prev: int(int32(binary.LittleEndian.Uint32(h.arena[off+4:]))),
	}
}

func (h *Heap) writeFreeBlock(off int, fb freeBlock) {
	binary.LittleEndian.PutUint32(h.arena[off:], uint32(int32(fb.next)))
	binary.LittleEndian.PutUint32(h.arena[off+4:], uint32(int32(fb.prev)))
}
