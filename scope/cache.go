package scope

import "github.com/tliron/commonlog"

// Adaptive caching for binding local-variable access.
//
// Each call site that reads or writes locals through a binding holds its own
// site cache. A site starts uncached, accumulates (name, shape) entries up
// to its configured limit, and past that retires to a megamorphic state that
// always walks the chain. Retirement is permanent as far as the site's own
// transitions go: a site that has seen too many shapes is assumed to keep
// seeing new ones. Only an explicit Reset from the surrounding dispatch
// framework rebuilds a site.
//
// Sites are mutated by the single goroutine executing their program
// location; the frames they resolve against may be shared.

var log = commonlog.GetLogger("garnet.scope")

// SiteState represents the current state of a lookup site's cache.
type SiteState uint8

const (
	SiteUncached    SiteState = iota // No cached lookup yet
	SiteCached                       // 1..limit entries
	SiteMegamorphic                  // Too many shapes, always walk
)

// CacheEntry holds one resolved lookup. The entry is valid for a binding
// iff the binding's depth-0 shape is identity-equal to Shape: shapes are
// append-only, so a (depth, slot) resolved under a shape stays correct for
// every frame still using that same shape object.
type CacheEntry struct {
	Name   string
	Shape  *Shape // depth-0 shape observed when the entry was built
	Depth  int
	Slot   int
	Absent bool // read sites: name definitively absent under this shape
}

// site is the state machine shared by read and write sites.
type site struct {
	state   SiteState
	entries []CacheEntry
	limit   int

	hits   uint64
	misses uint64
}

func newSite(limit int) site {
	if limit < 1 {
		panic("scope: cache limit must be positive")
	}
	return site{limit: limit}
}

// lookup scans entries in insertion order for one matching (name, shape).
func (s *site) lookup(name string, shape *Shape) (*CacheEntry, bool) {
	for i := range s.entries {
		e := &s.entries[i]
		if e.Name == name && e.Shape == shape {
			s.hits++
			return e, true
		}
	}
	s.misses++
	return nil, false
}

// record caches a resolved lookup, retiring the site if it is full.
func (s *site) record(e CacheEntry) {
	if len(s.entries) < s.limit {
		s.entries = append(s.entries, e)
		s.state = SiteCached
		return
	}
	s.state = SiteMegamorphic
	s.entries = nil
	log.Debugf("lookup site retired to megamorphic after exceeding %d cached shapes", s.limit)
}

// Reset clears the cache back to the uncached state. The surrounding
// dispatch framework calls this when it decides the site's entries are no
// longer trustworthy, e.g. after a shape the site cached an absent lookup
// under has since grown the name.
func (s *site) Reset() {
	s.state = SiteUncached
	s.entries = nil
	s.hits = 0
	s.misses = 0
}

// State returns the site's current cache state.
func (s *site) State() SiteState { return s.state }

// Hits returns the number of cache hits observed at this site.
func (s *site) Hits() uint64 { return s.hits }

// Misses returns the number of cache misses observed at this site.
func (s *site) Misses() uint64 { return s.misses }

// ---------------------------------------------------------------------------
// GetSite: cached local_variable_get
// ---------------------------------------------------------------------------

// GetSite caches local-variable reads at one call site.
type GetSite struct {
	site
}

// NewGetSite creates a read site with the given entry limit.
func NewGetSite(limit int) *GetSite {
	return &GetSite{site: newSite(limit)}
}

// Get reads name through b, using a cached (depth, slot) when the binding's
// depth-0 shape has been seen at this site before. A cached "absent" entry
// fails without walking. LastLine always takes the uncached thread-scoped
// path.
func (g *GetSite) Get(b *Binding, name string) (Value, error) {
	if name == LastLine {
		return b.lastLineGet()
	}
	if g.state == SiteMegamorphic {
		return b.GetLocal(name)
	}

	shape := b.topFrame().shape
	if e, ok := g.lookup(name, shape); ok {
		if e.Absent {
			return nil, NewNameError(name, b)
		}
		return b.frameAt(e.Depth).Get(e.Slot), nil
	}

	sd, found := b.findSlot(name)
	g.record(CacheEntry{Name: name, Shape: shape, Depth: sd.depth, Slot: sd.slot, Absent: !found})
	if !found {
		return nil, NewNameError(name, b)
	}
	return b.frameAt(sd.depth).Get(sd.slot), nil
}

// ---------------------------------------------------------------------------
// SetSite: cached local_variable_set
// ---------------------------------------------------------------------------

// SetSite caches local-variable writes at one call site.
type SetSite struct {
	site
}

// NewSetSite creates a write site with the given entry limit.
func NewSetSite(limit int) *SetSite {
	return &SetSite{site: newSite(limit)}
}

// Set writes name through b and returns the stored value. A miss that
// resolves to an absent name creates the slot in the depth-0 shape before
// caching, so write sites never cache an absent entry. LastLine always
// takes the uncached thread-scoped path.
func (s *SetSite) Set(b *Binding, name string, v Value) Value {
	if name == LastLine {
		return b.lastLineSet(v)
	}
	if s.state == SiteMegamorphic {
		return b.SetLocal(name, v)
	}

	shape := b.topFrame().shape
	if e, ok := s.lookup(name, shape); ok {
		b.frameAt(e.Depth).Set(e.Slot, v)
		return v
	}

	sd := b.findOrAddSlot(name)
	s.record(CacheEntry{Name: name, Shape: shape, Depth: sd.depth, Slot: sd.slot})
	b.frameAt(sd.depth).Set(sd.slot, v)
	return v
}
