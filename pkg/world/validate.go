package world

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks the static tables for consistency: exits lead somewhere,
// every lock has a door whose key can be obtained, residents stand in
// exactly one place and their requirements can be met. It returns every
// problem found.
func Validate() []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	entry, ok := locations[EntryLocation]
	switch {
	case !ok:
		add("entry location %q does not exist", EntryLocation)
	case entry.Locked:
		add("entry location %q must not be locked", EntryLocation)
	}

	placed := make(map[ItemID]LocationID)
	npcHomes := make(map[NPCID][]LocationID)
	for id, loc := range locations {
		if loc.ID != id {
			add("location %q has mismatched ID %q", id, loc.ID)
		}
		for _, tl := range Timelines {
			if loc.Narrative[tl] == "" {
				add("location %q has no %s narrative", id, tl)
			}
			if loc.Name[tl] == "" {
				add("location %q has no %s name", id, tl)
			}
			if loc.Locked && loc.LockedHint[tl] == "" {
				add("locked location %q has no %s hint", id, tl)
			}
		}
		for dir, dest := range loc.Exits {
			if _, ok := locations[dest]; !ok {
				add("location %q exit %s leads to unknown location %q", id, dir, dest)
			}
		}
		for tl, list := range loc.Items {
			for _, item := range list {
				if _, ok := items[item]; !ok {
					add("location %q lists unknown %s item %q", id, tl, item)
					continue
				}
				if prev, dup := placed[item]; dup {
					add("item %q is placed in both %q and %q", item, prev, id)
				}
				placed[item] = id
			}
		}
		for _, npc := range loc.NPCs {
			npcHomes[npc] = append(npcHomes[npc], id)
		}
	}

	given := make(map[ItemID]NPCID)
	for id, npc := range npcs {
		if npc.ID != id {
			add("npc %q has mismatched ID %q", id, npc.ID)
		}
		if homes := npcHomes[id]; len(homes) != 1 {
			add("npc %q must stand in exactly one location, found %d", id, len(homes))
		}
		if len(npc.Requires) > 0 && len(npc.RequiresConvinced) > 0 {
			add("npc %q mixes item and resident requirements", id)
		}
		for _, item := range npc.Requires {
			if _, ok := placed[item]; !ok {
				add("npc %q requires %q, which is not placed anywhere", id, item)
			}
		}
		for _, other := range npc.RequiresConvinced {
			if _, ok := npcs[other]; !ok {
				add("npc %q requires unknown resident %q", id, other)
			}
			if other == id {
				add("npc %q requires itself", id)
			}
		}
		if len(npc.RequiresConvinced) > 0 && npc.NeedOthers == "" {
			add("npc %q has resident requirements but no refusal line", id)
		}
		if npc.Gives != "" {
			if _, ok := items[npc.Gives]; !ok {
				add("npc %q gives unknown item %q", id, npc.Gives)
			}
			if home, dup := placed[npc.Gives]; dup {
				add("item %q is given by %q and also placed in %q", npc.Gives, id, home)
			}
			given[npc.Gives] = id
		}
	}
	for id := range npcHomes {
		if _, ok := npcs[id]; !ok {
			add("unknown npc %q placed in a location", id)
		}
	}

	doors := make(map[LocationID]bool)
	for _, rule := range doorRules {
		_, isPlaced := placed[rule.Key]
		_, isGiven := given[rule.Key]
		if !isPlaced && !isGiven {
			add("door to %q needs key %q, which no location or resident provides", rule.Unlocks, rule.Key)
		}
		doors[rule.Unlocks] = true
	}
	for _, id := range GatedLocations {
		loc, ok := locations[id]
		if !ok || !loc.Locked {
			add("gated location %q is not a locked location", id)
			continue
		}
		if !doors[id] {
			add("locked location %q has no door", id)
		}
	}
	for id, loc := range locations {
		if loc.Locked && !slices.Contains(GatedLocations, id) {
			add("locked location %q is missing from GatedLocations", id)
		}
	}

	return errs
}

// ErrInvalidWorld wraps the joined validation errors.
var ErrInvalidWorld = errors.New("invalid world data")

// Check joins the validation errors into one error, or returns nil.
func Check() error {
	errs := Validate()
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidWorld, errors.Join(errs...))
}
