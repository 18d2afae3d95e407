package state

import (
	"maps"
	"slices"

	"github.com/jwebster45206/pompeii/pkg/world"
)

// QuestProgress records milestones for the status report. Every field is
// derivable from the rest of the session but is tracked directly.
type QuestProgress struct {
	FoundVolcanicEvidence  bool `json:"found_volcanic_evidence"`
	FoundHistoricalRecords bool `json:"found_historical_records"`
	UnlockedTemple         bool `json:"unlocked_temple"`
	UnlockedVilla          bool `json:"unlocked_villa"`
	UnlockedTabularium     bool `json:"unlocked_tabularium"`
}

// SessionState is the single root of a play session. Both timelines read
// and write the same value; only the consoles are per timeline.
//
// Inventory, UnlockedLocations and ConvincedResidents are ordered sets that
// only grow. HasDiscoveredAncientConsole, HasOpenedVase and
// TimePortalActive are latches that never revert.
type SessionState struct {
	PresentConsole  []string                                               `json:"present_console"`
	PastConsole     []string                                               `json:"past_console"`
	CurrentLocation world.LocationID                                       `json:"current_location"`
	Inventory       []world.ItemID                                         `json:"inventory"`
	LocationItems   map[world.LocationID]map[world.Timeline][]world.ItemID `json:"location_items"`

	HasDiscoveredAncientConsole bool `json:"has_discovered_ancient_console"`
	HasOpenedVase               bool `json:"has_opened_vase"`
	TimePortalActive            bool `json:"time_portal_active"`

	UnlockedLocations  []world.LocationID `json:"unlocked_locations"`
	ConvincedResidents []world.NPCID      `json:"convinced_residents"`
	IsMapOpen          bool               `json:"is_map_open"`
	QuestProgress      QuestProgress      `json:"quest_progress"`
}

var introLines = []string{
	"=== POMPEII TIME OUT ===",
	"Pompeii, present day. The afternoon sun beats down on the excavated city.",
	"You have slipped away from your tour group to explore the Forum on your own.",
	"Type 'help' for a list of commands, or 'look' to take in your surroundings.",
}

// InitialState returns the fixed starting state of a new session.
func InitialState() SessionState {
	return SessionState{
		PresentConsole:     slices.Clone(introLines),
		PastConsole:        []string{},
		CurrentLocation:    world.EntryLocation,
		Inventory:          []world.ItemID{},
		LocationItems:      world.InitialItems(),
		UnlockedLocations:  []world.LocationID{world.EntryLocation},
		ConvincedResidents: []world.NPCID{},
	}
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s SessionState) Clone() SessionState {
	out := s
	out.PresentConsole = slices.Clone(s.PresentConsole)
	out.PastConsole = slices.Clone(s.PastConsole)
	out.Inventory = slices.Clone(s.Inventory)
	out.UnlockedLocations = slices.Clone(s.UnlockedLocations)
	out.ConvincedResidents = slices.Clone(s.ConvincedResidents)
	if s.LocationItems != nil {
		out.LocationItems = make(map[world.LocationID]map[world.Timeline][]world.ItemID, len(s.LocationItems))
		for id, perTimeline := range s.LocationItems {
			cp := maps.Clone(perTimeline)
			for tl, list := range cp {
				cp[tl] = slices.Clone(list)
			}
			out.LocationItems[id] = cp
		}
	}
	return out
}

// Console returns the transcript for a timeline.
func (s SessionState) Console(tl world.Timeline) []string {
	if tl == world.Past {
		return s.PastConsole
	}
	return s.PresentConsole
}

func (s SessionState) HasItem(id world.ItemID) bool {
	return slices.Contains(s.Inventory, id)
}

func (s SessionState) IsUnlocked(id world.LocationID) bool {
	return slices.Contains(s.UnlockedLocations, id)
}

func (s SessionState) IsConvinced(id world.NPCID) bool {
	return slices.Contains(s.ConvincedResidents, id)
}

// CanEnter reports whether "go" may move into the location: it exists and
// is either unlocked by default or unlocked in this session.
func (s SessionState) CanEnter(id world.LocationID) bool {
	loc, ok := world.GetLocation(id)
	if !ok {
		return false
	}
	return !loc.Locked || s.IsUnlocked(id)
}

// ItemsAt returns the items visible at a location in one timeline.
func (s SessionState) ItemsAt(id world.LocationID, tl world.Timeline) []world.ItemID {
	return s.LocationItems[id][tl]
}

func (s *SessionState) appendConsole(tl world.Timeline, lines ...string) {
	if tl == world.Past {
		s.PastConsole = append(s.PastConsole, lines...)
		return
	}
	s.PresentConsole = append(s.PresentConsole, lines...)
}

func (s *SessionState) addItem(id world.ItemID) {
	if !s.HasItem(id) {
		s.Inventory = append(s.Inventory, id)
	}
}

// removeItemAt takes an item out of a location's list for one timeline.
// It reports false when the item is not there.
func (s *SessionState) removeItemAt(loc world.LocationID, tl world.Timeline, id world.ItemID) bool {
	list := s.LocationItems[loc][tl]
	i := slices.Index(list, id)
	if i < 0 {
		return false
	}
	s.LocationItems[loc][tl] = slices.Delete(list, i, i+1)
	return true
}

func (s *SessionState) unlock(id world.LocationID) {
	if !s.IsUnlocked(id) {
		s.UnlockedLocations = append(s.UnlockedLocations, id)
	}
	switch id {
	case world.Temple:
		s.QuestProgress.UnlockedTemple = true
	case world.Villa:
		s.QuestProgress.UnlockedVilla = true
	case world.Tabularium:
		s.QuestProgress.UnlockedTabularium = true
	}
}

func (s *SessionState) convince(id world.NPCID) {
	if !s.IsConvinced(id) {
		s.ConvincedResidents = append(s.ConvincedResidents, id)
	}
}

// questUnlocked reads the quest flag that tracks a gated location.
func (qp QuestProgress) questUnlocked(id world.LocationID) bool {
	switch id {
	case world.Temple:
		return qp.UnlockedTemple
	case world.Villa:
		return qp.UnlockedVilla
	case world.Tabularium:
		return qp.UnlockedTabularium
	}
	return false
}
