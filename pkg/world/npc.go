package world

// NPC is a resident of ancient Pompeii who can be persuaded to evacuate.
// Dialogue is only reachable from the past timeline.
//
// Ordinary residents want evidence from the shared inventory (Requires).
// The harbor master wants the other residents' approval instead
// (RequiresConvinced); the two are kept apart because they are checked
// against different parts of the session. A resident may hand over an
// item (Gives) once convinced; he never opens a location himself.
type NPC struct {
	ID                NPCID      `json:"id"`
	Name              string     `json:"name"`
	Greeting          string     `json:"greeting"`
	Skeptical         string     `json:"skeptical"`
	Convinced         string     `json:"convinced"`
	NeedOthers        string     `json:"need_others,omitempty"` // Refusal used when RequiresConvinced is unmet
	Requires          []ItemID   `json:"requires,omitempty"`
	RequiresConvinced []NPCID    `json:"requires_convinced,omitempty"`
	Gives             ItemID     `json:"gives,omitempty"` // Added to the shared inventory once convinced
}

// PrimaryNPCs must all be convinced before the terminal NPC listens.
var PrimaryNPCs = []NPCID{CityOfficial, HighPriest, Senator}

// TerminalNPC is the resident whose conviction wins the game.
const TerminalNPC = HarborMaster

// NPCOrder is the canonical order for status reports.
var NPCOrder = []NPCID{CityOfficial, HighPriest, Senator, HarborMaster}

// GetNPC returns the dialogue data for a resident.
func GetNPC(id NPCID) (NPC, bool) {
	n, ok := npcs[id]
	return n, ok
}

var npcs = map[NPCID]NPC{
	CityOfficial: {
		ID:        CityOfficial,
		Name:      "Gaius Cuspius Pansa, city official",
		Greeting:  "\"Citizen, the aediles are busy. State your business.\"",
		Skeptical: "\"The mountain? It has stood quietly for as long as anyone remembers. Bring me proof, not omens.\"",
		Convinced: "\"By Jupiter... rock from the mountain's heart, and a written account of the city's end? I will sign the evacuation order. Take my seal and show it at the Tabularium door.\"",
		Requires:  []ItemID{VolcanicRockSample, HistoricalAccounts},
		Gives:     OfficialSeal,
	},
	HighPriest: {
		ID:        HighPriest,
		Name:      "the high priest of Apollo",
		Greeting:  "\"You disturb the god's house, stranger.\"",
		Skeptical: "\"The auguries are favourable. Apollo would warn his priests before any stranger.\"",
		Convinced: "\"Sulfur where there was clean water... and images of the dead, made by no hand I know. This is the god's warning. I will tell the faithful to leave.\"",
		Requires:  []ItemID{SulfurCrystals, PlasterCastPhoto},
	},
	Senator: {
		ID:        Senator,
		Name:      "Senator Lucius Caecilius",
		Greeting:  "\"Who let you into my villa?\"",
		Skeptical: "\"The earthquake seventeen years ago was the gods' business and it is over. I will not flee my estate over a tremor.\"",
		Convinced: "\"The same signs as before the great quake, recorded by machines that measure the earth itself? Very well. The Senate's voice will join yours.\"",
		Requires:  []ItemID{SeismographReadout, EarthquakeRecords},
	},
	HarborMaster: {
		ID:                HarborMaster,
		Name:              "the harbor master",
		Greeting:          "\"Make it quick, I have cargo to move.\"",
		Skeptical:         "\"Empty my harbor on the word of a stranger? Not likely.\"",
		Convinced:         "\"The city official, the high priest and the senator all say the same thing. Then it is decided. Every ship leaves tonight, and every ship is full.\"",
		NeedOthers:        "\"I will not send a single ship out until the city official, the high priest and the senator give their approval.\"",
		RequiresConvinced: []NPCID{CityOfficial, HighPriest, Senator},
	},
}
