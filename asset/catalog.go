package asset

// catalog is a name-keyed map paired with a stable enumeration list.
// Each entry stores its own offset in the list so that lookups never scan,
// and removal only repairs the entries that follow the removed one.
type catalog[T any] struct {
	byName map[string]*catalogEntry[T]
	names  []string
}

type catalogEntry[T any] struct {
	value T
	pos   int
}

func (c *catalog[T]) get(name string) (v T, ok bool) {
	e, ok := c.byName[name]
	if !ok {
		return v, false
	}
	return e.value, true
}

func (c *catalog[T]) has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// position returns the entry's offset in the enumeration list.
func (c *catalog[T]) position(name string) (int, bool) {
	e, ok := c.byName[name]
	if !ok {
		return -1, false
	}
	return e.pos, true
}

// insert appends a new entry and returns its position. It reports false,
// leaving the catalog untouched, when the name is taken.
func (c *catalog[T]) insert(name string, v T) (int, bool) {
	if c.byName == nil {
		c.byName = make(map[string]*catalogEntry[T])
	}
	if _, dup := c.byName[name]; dup {
		return -1, false
	}
	pos := len(c.names)
	c.byName[name] = &catalogEntry[T]{value: v, pos: pos}
	c.names = append(c.names, name)
	return pos, true
}

// remove deletes the entry and compacts the enumeration list. Only the
// entries after the removed position have their offsets rewritten.
func (c *catalog[T]) remove(name string) (v T, ok bool) {
	e, ok := c.byName[name]
	if !ok {
		return v, false
	}
	delete(c.byName, name)

	at := e.pos
	copy(c.names[at:], c.names[at+1:])
	c.names[len(c.names)-1] = ""
	c.names = c.names[:len(c.names)-1]
	for i := at; i < len(c.names); i++ {
		c.byName[c.names[i]].pos = i
	}
	return e.value, true
}

// list returns a copy of the enumeration list.
func (c *catalog[T]) list() []string {
	return append([]string(nil), c.names...)
}

func (c *catalog[T]) len() int {
	return len(c.names)
}

func (c *catalog[T]) clear() {
	c.byName = nil
	c.names = nil
}
