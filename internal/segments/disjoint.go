package segments

import "slices"

// Resolver maps a segment id to the canonical root of its equivalence class.
type Resolver interface {
	Get(id ID) ID
}

// DisjointSets is a union-find over segment ids. The root of every class is
// its smallest member, so roots do not depend on the order of unions.
type DisjointSets struct {
	parent  map[ID]ID
	min     map[ID]ID
	members map[ID][]ID
}

var _ Resolver = (*DisjointSets)(nil)

func NewDisjointSets() *DisjointSets {
	return &DisjointSets{
		parent:  make(map[ID]ID),
		min:     make(map[ID]ID),
		members: make(map[ID][]ID),
	}
}

func (d *DisjointSets) find(id ID) (ID, bool) {
	p, ok := d.parent[id]
	if !ok {
		return id, false
	}
	if p == id {
		return id, true
	}
	root, _ := d.find(p)
	d.parent[id] = root
	return root, true
}

func (d *DisjointSets) add(id ID) ID {
	if root, ok := d.find(id); ok {
		return root
	}
	d.parent[id] = id
	d.min[id] = id
	d.members[id] = []ID{id}
	return id
}

// Get returns the smallest member of id's class. Ids never seen are their own
// root.
func (d *DisjointSets) Get(id ID) ID {
	root, ok := d.find(id)
	if !ok {
		return id
	}
	return d.min[root]
}

// Union merges the classes of a and b and reports whether they were distinct.
func (d *DisjointSets) Union(a, b ID) bool {
	ra, rb := d.add(a), d.add(b)
	if ra == rb {
		return false
	}
	if len(d.members[ra]) < len(d.members[rb]) {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.members[ra] = append(d.members[ra], d.members[rb]...)
	if d.min[rb].Less(d.min[ra]) {
		d.min[ra] = d.min[rb]
	}
	delete(d.members, rb)
	delete(d.min, rb)
	return true
}

// Members returns the members of id's class sorted ascending.
func (d *DisjointSets) Members(id ID) []ID {
	root, ok := d.find(id)
	if !ok {
		return []ID{id}
	}
	members := slices.Clone(d.members[root])
	slices.SortFunc(members, func(a, b ID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return members
}

func (d *DisjointSets) Len() int {
	return len(d.parent)
}

// Groups returns every class with more than one member, ordered by root.
func (d *DisjointSets) Groups() [][]ID {
	var roots []ID
	for root, members := range d.members {
		if len(members) > 1 {
			roots = append(roots, root)
		}
	}
	groups := make([][]ID, 0, len(roots))
	for _, root := range roots {
		groups = append(groups, d.Members(root))
	}
	slices.SortFunc(groups, func(a, b []ID) int {
		switch {
		case a[0].Less(b[0]):
			return -1
		case b[0].Less(a[0]):
			return 1
		}
		return 0
	})
	return groups
}
