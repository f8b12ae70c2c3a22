package system

// MemHooks is the per-context allocator triple. Buffers obtained through
// one context's hooks must be released through the same context; mixing
// hook sets across allocate and release is caller error and is not
// detected here.
type MemHooks struct {
	Alloc   func(n int) []byte
	Realloc func(buf []byte, n int) []byte
	Free    func(buf []byte)
}

func defaultMemHooks() MemHooks {
	return MemHooks{
		Alloc: func(n int) []byte {
			return make([]byte, n)
		},
		Realloc: func(buf []byte, n int) []byte {
			if n <= cap(buf) {
				return buf[:n]
			}
			grown := make([]byte, n)
			copy(grown, buf)
			return grown
		},
		Free: func([]byte) {},
	}
}

// Alloc obtains n bytes from the context's allocator.
func (c *Context) Alloc(n int) ([]byte, error) {
	buf := c.mem.Alloc(n)
	if buf == nil && n > 0 {
		return nil, ErrOutOfMemory
	}
	return buf, nil
}

// Realloc resizes buf to n bytes, preserving its prefix.
func (c *Context) Realloc(buf []byte, n int) ([]byte, error) {
	out := c.mem.Realloc(buf, n)
	if out == nil && n > 0 {
		return nil, ErrOutOfMemory
	}
	return out, nil
}

// Free releases a buffer obtained from this context. Freeing nil is a
// no-op.
func (c *Context) Free(buf []byte) {
	if buf == nil {
		return
	}
	c.mem.Free(buf)
}

// Calloc allocates count*elemSize bytes, zeroed. The multiplication is
// checked for wrap-around before the allocator runs; on overflow it
// returns ErrOverflow and performs no allocation.
func (c *Context) Calloc(count, elemSize int) ([]byte, error) {
	if count < 0 || elemSize < 0 {
		return nil, ErrOverflow
	}
	nbytes := count * elemSize
	if elemSize != 0 && nbytes/elemSize != count {
		return nil, ErrOverflow
	}
	buf, err := c.Alloc(nbytes)
	if err != nil {
		return nil, err
	}
	for i := range buf {
		buf[i] = 0
	}
	return buf, nil
}
