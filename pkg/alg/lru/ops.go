package lru

// Get retrieves a value and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)

		var zero V

		return zero, false
	}

	c.hits.Add(1)
	c.moveToFront(ent)

	return ent.value, true
}

// Put adds or updates a key-value pair, evicting the least recently used
// entry when the cache is full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		ent.value = value
		c.moveToFront(ent)

		return
	}

	if len(c.entries) >= c.maxEntries {
		c.evictTail()
	}

	ent := &entry[K, V]{key: key, value: value}
	c.entries[key] = ent
	c.addToFront(ent)
}

// GetOrCompute returns the cached value for key, computing and caching it
// on a miss. compute runs without the lock held.
func (c *Cache[K, V]) GetOrCompute(key K, compute func(K) V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	v := compute(key)
	c.Put(key, v)

	return v
}

func (c *Cache[K, V]) evictTail() {
	if c.tail == nil {
		return
	}

	victim := c.tail
	c.removeFromList(victim)
	delete(c.entries, victim.key)
}

func (c *Cache[K, V]) moveToFront(ent *entry[K, V]) {
	if c.head == ent {
		return
	}

	c.removeFromList(ent)
	c.addToFront(ent)
}

func (c *Cache[K, V]) addToFront(ent *entry[K, V]) {
	ent.prev = nil
	ent.next = c.head

	if c.head != nil {
		c.head.prev = ent
	}

	c.head = ent

	if c.tail == nil {
		c.tail = ent
	}
}

func (c *Cache[K, V]) removeFromList(ent *entry[K, V]) {
	if ent.prev != nil {
		ent.prev.next = ent.next
	} else {
		c.head = ent.next
	}

	if ent.next != nil {
		ent.next.prev = ent.prev
	} else {
		c.tail = ent.prev
	}

	ent.prev, ent.next = nil, nil
}
