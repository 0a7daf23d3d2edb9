package datalink

import "sync"

// ByteBuffer is a simple ordered byte sequence supporting the scan-then-trim
// access pattern PAR framing needs: index into the buffer without removing
// anything, then drop a leading run once a decision has been reached. It is
// loop-local — only the owning event loop goroutine ever touches it — so it
// carries no locking, mirroring how the reference implementation's
// receiveBuffer is a plain (unsynchronized) LinkedList.
type ByteBuffer struct {
	bytes []byte
}

// Len returns the number of buffered bytes.
func (b *ByteBuffer) Len() int {
	return len(b.bytes)
}

// At returns the byte at index i. The caller must ensure i < Len().
func (b *ByteBuffer) At(i int) byte {
	return b.bytes[i]
}

// Append adds a byte to the end of the buffer.
func (b *ByteBuffer) Append(v byte) {
	b.bytes = append(b.bytes, v)
}

// RemoveFront discards the first n bytes.
func (b *ByteBuffer) RemoveFront(n int) {
	b.bytes = append([]byte(nil), b.bytes[n:]...)
}

// byteFIFO is a thread-safe FIFO of bytes: many producers (any goroutine
// calling Layer.Send) and a single consumer (the owning event loop).
type byteFIFO struct {
	mu    sync.Mutex
	bytes []byte
}

func (f *byteFIFO) push(data []byte) {
	f.mu.Lock()
	f.bytes = append(f.bytes, data...)
	f.mu.Unlock()
}

func (f *byteFIFO) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bytes)
}

// popUpTo removes and returns up to n leading bytes.
func (f *byteFIFO) popUpTo(n int) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n > len(f.bytes) {
		n = len(f.bytes)
	}
	out := append([]byte(nil), f.bytes[:n]...)
	f.bytes = append([]byte(nil), f.bytes[n:]...)
	return out
}
