package typedecl

// Dep is one dependency edge: the referenced type name and whether the
// reference needs the full definition (by value) or only a forward
// declaration (through a pointer).
type Dep struct {
	Name   string
	Strong bool
}

// Deps is an insertion-ordered dependency set. Adding a name that is
// already present keeps its original position and ORs the strength, so a
// type referenced both by value and by pointer ends up strong.
//
// The zero value is an empty set ready to use.
type Deps struct {
	entries []Dep
	index   map[string]int
}

// DepsOf builds a set from edges in order, merging repeats.
func DepsOf(edges ...Dep) Deps {
	var d Deps
	for _, e := range edges {
		d.Add(e.Name, e.Strong)
	}
	return d
}

// Add records a reference to name.
func (d *Deps) Add(name string, strong bool) {
	if i, ok := d.index[name]; ok {
		d.entries[i].Strong = d.entries[i].Strong || strong
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[name] = len(d.entries)
	d.entries = append(d.entries, Dep{Name: name, Strong: strong})
}

// Merge adds every edge of other, in other's order.
func (d *Deps) Merge(other Deps) {
	for _, e := range other.entries {
		d.Add(e.Name, e.Strong)
	}
}

// Len returns the number of distinct referenced names.
func (d Deps) Len() int {
	return len(d.entries)
}

// Get reports the strength recorded for name and whether it is present.
func (d Deps) Get(name string) (strong bool, ok bool) {
	i, ok := d.index[name]
	if !ok {
		return false, false
	}
	return d.entries[i].Strong, true
}

// All returns a copy of the edges in insertion order.
func (d Deps) All() []Dep {
	out := make([]Dep, len(d.entries))
	copy(out, d.entries)
	return out
}

// Strong returns the names referenced by value, in insertion order.
func (d Deps) Strong() []string {
	return d.filter(true)
}

// Weak returns the names referenced only through pointers, in insertion order.
func (d Deps) Weak() []string {
	return d.filter(false)
}

func (d Deps) filter(strong bool) []string {
	var names []string
	for _, e := range d.entries {
		if e.Strong == strong {
			names = append(names, e.Name)
		}
	}
	return names
}
