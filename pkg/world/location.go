package world

import "maps"

// Location is a place that exists in both timelines. The two eras are
// spatially coincident, so a single ID covers both.
type Location struct {
	ID         LocationID               `json:"id"`
	Name       map[Timeline]string      `json:"name"`
	Narrative  map[Timeline]string      `json:"narrative"`
	Items      map[Timeline][]ItemID    `json:"items,omitempty"` // Initial contents; sessions keep their own copy
	Exits      map[Direction]LocationID `json:"exits,omitempty"`
	NPCs       []NPCID                  `json:"npcs,omitempty"` // Past timeline only
	Locked     bool                     `json:"locked,omitempty"`
	LockedHint map[Timeline]string      `json:"locked_hint,omitempty"` // Shown when "go" runs into the lock
}

// HasNPC reports whether the NPC stands at this location in the past.
func (l Location) HasNPC(id NPCID) bool {
	for _, n := range l.NPCs {
		if n == id {
			return true
		}
	}
	return false
}

// DoorRule describes a locked location that opens with a key from the
// past timeline. The door can be worked from the location itself or from
// any location with an exit into it.
type DoorRule struct {
	Unlocks LocationID `json:"unlocks"`
	Key     ItemID     `json:"key"`
}

var doorRules = []DoorRule{
	{Unlocks: Temple, Key: CeremonialKey},
	{Unlocks: Villa, Key: VillaKey},
	{Unlocks: Tabularium, Key: OfficialSeal},
}

// DoorRules returns the key-operated doors in evaluation order.
func DoorRules() []DoorRule {
	return append([]DoorRule(nil), doorRules...)
}

// GatedLocations lists every location with a static lock, in report order.
var GatedLocations = []LocationID{Temple, Villa, Tabularium}

// LocationOrder is the canonical order for listing locations.
var LocationOrder = []LocationID{
	MainSquare, Temple, Market, Villa, Tabularium, MarinaGate, Baths, Harbor,
}

// GetLocation returns a copy of the static location. Maps inside the copy
// are shared with the table and must not be written to.
func GetLocation(id LocationID) (Location, bool) {
	loc, ok := locations[id]
	return loc, ok
}

// InitialItems returns a fresh, writable copy of every location's item lists.
func InitialItems() map[LocationID]map[Timeline][]ItemID {
	out := make(map[LocationID]map[Timeline][]ItemID, len(locations))
	for id, loc := range locations {
		perTimeline := make(map[Timeline][]ItemID, len(loc.Items))
		for tl, list := range loc.Items {
			perTimeline[tl] = append([]ItemID(nil), list...)
		}
		out[id] = perTimeline
	}
	return out
}

// Adjacent reports whether from has an exit leading to to.
func Adjacent(from, to LocationID) bool {
	loc, ok := locations[from]
	if !ok {
		return false
	}
	for _, dest := range loc.Exits {
		if dest == to {
			return true
		}
	}
	return false
}

// Locations returns a copy of the location table keyed by ID.
func Locations() map[LocationID]Location {
	return maps.Clone(locations)
}

var locations = map[LocationID]Location{
	MainSquare: {
		ID: MainSquare,
		Name: map[Timeline]string{
			Present: "Forum Ruins",
			Past:    "The Forum",
		},
		Narrative: map[Timeline]string{
			Present: "You stand in the ruins of the Forum. Broken columns frame a wide, grassy rectangle, and Vesuvius looms quietly to the north. A tour group shuffles past a glass case holding an unusual vase.",
			Past:    "The Forum bustles with merchants, magistrates and slaves. Marcus stands beneath the colonnade, sweat on his brow. The ground trembled again this morning, but nobody seems worried.",
		},
		Items: map[Timeline][]ItemID{
			Present: {AncientVase, TouristMap},
		},
		Exits: map[Direction]LocationID{
			North: Temple,
			East:  Market,
			West:  Tabularium,
			South: MarinaGate,
		},
		NPCs: []NPCID{CityOfficial},
	},
	Temple: {
		ID: Temple,
		Name: map[Timeline]string{
			Present: "Temple of Apollo (ruins)",
			Past:    "Temple of Apollo",
		},
		Narrative: map[Timeline]string{
			Present: "The Temple of Apollo is a platform of worn stone. A bronze statue of the god, a replica, aims his bow at nothing. Archaeologists have left a core sample case beside the altar.",
			Past:    "Incense hangs heavy in the Temple of Apollo. Priests murmur over an altar stained with offerings. The high priest watches Marcus with suspicion.",
		},
		Items: map[Timeline][]ItemID{
			Present: {AshLayerCore},
			Past:    {VillaKey},
		},
		Exits: map[Direction]LocationID{
			South: MainSquare,
		},
		NPCs:   []NPCID{HighPriest},
		Locked: true,
		LockedHint: map[Timeline]string{
			Present: "A locked iron gate and a pile of rubble block the way to the Temple of Apollo. Perhaps Marcus could open the temple doors from the past.",
			Past:    "The great doors of the Temple of Apollo are barred. A ceremonial key would open them.",
		},
	},
	Market: {
		ID: Market,
		Name: map[Timeline]string{
			Present: "Macellum Ruins",
			Past:    "The Macellum",
		},
		Narrative: map[Timeline]string{
			Present: "The old market hall is roped off. A volcanology field station hums under a tarp, a printer spitting out paper tape.",
			Past:    "The Macellum smells of fish sauce and figs. Stalls crowd the courtyard. Near an overturned basket, something metallic glints in the dust.",
		},
		Items: map[Timeline][]ItemID{
			Present: {SeismographReadout},
			Past:    {CeremonialKey},
		},
		Exits: map[Direction]LocationID{
			West:  MainSquare,
			North: Villa,
		},
	},
	Villa: {
		ID: Villa,
		Name: map[Timeline]string{
			Present: "Villa of the Mysteries (ruins)",
			Past:    "Villa of the Mysteries",
		},
		Narrative: map[Timeline]string{
			Present: "Red frescoes still cling to the walls of the Villa of the Mysteries, their figures frozen mid-ritual.",
			Past:    "The villa is cool and quiet. A senator reclines among his scrolls, irritated by the interruption.",
		},
		Exits: map[Direction]LocationID{
			South: Market,
		},
		NPCs:   []NPCID{Senator},
		Locked: true,
		LockedHint: map[Timeline]string{
			Present: "The Villa of the Mysteries is closed for restoration. Perhaps Marcus could open the villa from the past.",
			Past:    "The villa's door is locked. The senator keeps a key, and so do the temple priests.",
		},
	},
	Tabularium: {
		ID: Tabularium,
		Name: map[Timeline]string{
			Present: "Tabularium (ruins)",
			Past:    "The Tabularium",
		},
		Narrative: map[Timeline]string{
			Present: "The record office is an empty brick shell. Whatever was written here burned or rotted long ago.",
			Past:    "Shelves of wax tablets and scrolls line the Tabularium. The city's records go back decades, including the great earthquake seventeen years ago.",
		},
		Items: map[Timeline][]ItemID{
			Past: {EarthquakeRecords},
		},
		Exits: map[Direction]LocationID{
			East: MainSquare,
		},
		Locked: true,
		LockedHint: map[Timeline]string{
			Present: "A barrier closes off the Tabularium ruins. In the past, only the bearer of the city official's seal could enter.",
			Past:    "A guard blocks the door of the Tabularium. Only the city official can grant access to the records, and only under his seal.",
		},
	},
	MarinaGate: {
		ID: MarinaGate,
		Name: map[Timeline]string{
			Present: "Porta Marina",
			Past:    "The Marina Gate",
		},
		Narrative: map[Timeline]string{
			Present: "The steep Porta Marina leads toward the old shoreline. A small museum display holds translations of Pliny the Younger's letters.",
			Past:    "Carts rattle through the Marina Gate. Sailors and fishermen come and go from the harbor below.",
		},
		Items: map[Timeline][]ItemID{
			Present: {HistoricalAccounts},
		},
		Exits: map[Direction]LocationID{
			North: MainSquare,
			South: Harbor,
			East:  Baths,
		},
	},
	Baths: {
		ID: Baths,
		Name: map[Timeline]string{
			Present: "Stabian Baths (ruins)",
			Past:    "The Stabian Baths",
		},
		Narrative: map[Timeline]string{
			Present: "Plaster walls and empty pools. Geologists have tagged a chunk of pumice embedded in the floor.",
			Past:    "Steam fills the Stabian Baths, but the water smells of sulfur and the bathers complain. Yellow crystals crust the edge of the hot pool.",
		},
		Items: map[Timeline][]ItemID{
			Present: {VolcanicRockSample},
			Past:    {SulfurCrystals},
		},
		Exits: map[Direction]LocationID{
			West: MarinaGate,
		},
	},
	Harbor: {
		ID: Harbor,
		Name: map[Timeline]string{
			Present: "Ancient Shoreline",
			Past:    "The Harbor",
		},
		Narrative: map[Timeline]string{
			Present: "The sea retreated centuries ago. An information board shows photographs of plaster casts found near the old harbor.",
			Past:    "Ships crowd the harbor, sails furled. The harbor master barks orders from the quay. His ships could carry thousands to safety.",
		},
		Items: map[Timeline][]ItemID{
			Present: {PlasterCastPhoto},
		},
		Exits: map[Direction]LocationID{
			North: MarinaGate,
		},
		NPCs: []NPCID{HarborMaster},
	},
}
