package permissions

import (
	"context"
	"sort"
	"sync/atomic"
)

// Catalog is the immutable (module, action) lookup built from the administered
// grant data. It is never mutated after construction; reloads build a fresh
// Catalog and swap it atomically through the Holder.
type Catalog struct {
	byRole map[int64]map[string]CatalogEntry
}

// RoleGrant is one role → capability edge as loaded from storage.
type RoleGrant struct {
	RoleID int64
	Entry  CatalogEntry
}

// BuildCatalog constructs the lookup. Capability components are normalized
// here, so lookups stay insensitive to case and surrounding whitespace in the
// stored rows too.
func BuildCatalog(grants []RoleGrant) *Catalog {
	byRole := make(map[int64]map[string]CatalogEntry)
	for _, g := range grants {
		entry := g.Entry
		entry.Capability = NewCapability(entry.Capability.Module, entry.Capability.Action)
		caps, ok := byRole[g.RoleID]
		if !ok {
			caps = make(map[string]CatalogEntry)
			byRole[g.RoleID] = caps
		}
		caps[entry.Capability.Key()] = entry
	}
	return &Catalog{byRole: byRole}
}

// Lookup finds the catalog entry granted to roleID for the given capability.
func (c *Catalog) Lookup(roleID int64, cap Capability) (CatalogEntry, bool) {
	caps, ok := c.byRole[roleID]
	if !ok {
		return CatalogEntry{}, false
	}
	entry, ok := caps[cap.Key()]
	return entry, ok
}

// RoleCapabilities returns every capability granted to roleID, ordered by key.
func (c *Catalog) RoleCapabilities(roleID int64) []CatalogEntry {
	caps, ok := c.byRole[roleID]
	if !ok {
		return nil
	}
	entries := make([]CatalogEntry, 0, len(caps))
	for _, e := range caps {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Capability.Key() < entries[j].Capability.Key()
	})
	return entries
}

// GrantLoader fetches the full grant table from storage.
type GrantLoader interface {
	LoadGrants(ctx context.Context) ([]RoleGrant, error)
}

// Holder publishes the current Catalog. Readers take a consistent snapshot;
// Reload swaps in a freshly built table without blocking them.
type Holder struct {
	current atomic.Pointer[Catalog]
	loader  GrantLoader
}

func NewHolder(loader GrantLoader) *Holder {
	h := &Holder{loader: loader}
	h.current.Store(BuildCatalog(nil))
	return h
}

// Load returns the current catalog snapshot.
func (h *Holder) Load() *Catalog {
	return h.current.Load()
}

// Reload rebuilds the catalog from storage and swaps it in. On failure the
// previous catalog stays published.
func (h *Holder) Reload(ctx context.Context) error {
	grants, err := h.loader.LoadGrants(ctx)
	if err != nil {
		return err
	}
	h.current.Store(BuildCatalog(grants))
	return nil
}
