package monitor

// cache remembers the hashes of the last few memory images sent, so an
// unchanged image can be sent as its slot number. Clients keep the images
// in the same slots.
type cache struct {
	hashes []uint64
	used   []bool
	idx    int
}

func newCache(size int) *cache {
	return &cache{
		hashes: make([]uint64, size),
		used:   make([]bool, size),
	}
}

// index returns the slot holding hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, h := range c.hashes {
		if c.used[i] && h == hash {
			return i
		}
	}
	return -1
}

// next returns the slot the next hash will be stored in, the oldest.
func (c *cache) next() int {
	return c.idx
}

// store records hash in slot once the image has been sent.
func (c *cache) store(slot int, hash uint64) {
	c.hashes[slot] = hash
	c.used[slot] = true
	c.idx = (slot + 1) % len(c.hashes)
}

// reset forgets every slot, used when a client joins that has an empty
// cache.
func (c *cache) reset() {
	for i := range c.used {
		c.used[i] = false
	}
	c.idx = 0
}
