package world

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Timeline is one of the two parallel play perspectives.
type Timeline string

const (
	Past    Timeline = "past"    // Pompeii, 79 AD, seen through Marcus
	Present Timeline = "present" // the excavated ruins
)

// Timelines lists both timelines in display order.
var Timelines = []Timeline{Present, Past}

func (t Timeline) IsValid() bool {
	return t == Past || t == Present
}

// ParseTimeline accepts a timeline name in any case.
func ParseTimeline(s string) (Timeline, bool) {
	t := Timeline(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}

type LocationID string

const (
	MainSquare LocationID = "main_square"
	Temple     LocationID = "temple"
	Market     LocationID = "market"
	Villa      LocationID = "villa"
	Tabularium LocationID = "tabularium"
	MarinaGate LocationID = "marina_gate"
	Baths      LocationID = "baths"
	Harbor     LocationID = "harbor"
)

// EntryLocation is where every session starts. It is always unlocked.
const EntryLocation = MainSquare

func (id LocationID) IsValid() bool {
	_, ok := locations[id]
	return ok
}

type NPCID string

const (
	CityOfficial NPCID = "city_official"
	HighPriest   NPCID = "high_priest"
	Senator      NPCID = "senator"
	HarborMaster NPCID = "harbor_master"
)

func (id NPCID) IsValid() bool {
	_, ok := npcs[id]
	return ok
}

type ItemID string

const (
	AncientVase        ItemID = "ancient_vase"
	TouristMap         ItemID = "tourist_map"
	VolcanicRockSample ItemID = "volcanic_rock_sample"
	SulfurCrystals     ItemID = "sulfur_crystals"
	AshLayerCore       ItemID = "ash_layer_core"
	SeismographReadout ItemID = "seismograph_readout"
	HistoricalAccounts ItemID = "historical_accounts"
	EarthquakeRecords  ItemID = "earthquake_records"
	PlasterCastPhoto   ItemID = "plaster_cast_photo"
	CeremonialKey      ItemID = "ceremonial_key"
	VillaKey           ItemID = "villa_key"
	OfficialSeal       ItemID = "official_seal"
)

func (id ItemID) IsValid() bool {
	_, ok := items[id]
	return ok
}

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions is the fixed order exits are listed in.
var Directions = []Direction{North, South, East, West}

// DisplayName turns a snake_case key into a title-cased label,
// e.g. "volcanic_rock_sample" -> "Volcanic Rock Sample".
// A Caser is stateful, so each call gets its own.
func DisplayName[T ~string](key T) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(key), "_", " "))
}
