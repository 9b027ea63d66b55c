package asset

// PathTable assigns sequential ids, starting at 0, to the distinct source
// paths seen while loading a catalog.
type PathTable struct {
	paths []string
	ids   map[string]int
}

// Store returns the id of path, assigning the next id on first sight.
func (t *PathTable) Store(path string) int {
	if id, ok := t.ids[path]; ok {
		return id
	}
	if t.ids == nil {
		t.ids = make(map[string]int)
	}
	id := len(t.paths)
	t.paths = append(t.paths, path)
	t.ids[path] = id
	return id
}

// Path returns the path stored under id.
func (t *PathTable) Path(id int) (string, bool) {
	if id < 0 || id >= len(t.paths) {
		return "", false
	}
	return t.paths[id], true
}

// ID returns the id of a stored path.
func (t *PathTable) ID(path string) (int, bool) {
	id, ok := t.ids[path]
	return id, ok
}

// Len returns the number of distinct paths.
func (t *PathTable) Len() int { return len(t.paths) }
