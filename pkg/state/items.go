package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jwebster45206/pompeii/pkg/command"
	"github.com/jwebster45206/pompeii/pkg/world"
)

// portalIntro replaces the past console when the vase is opened.
var portalIntro = []string{
	"=== POMPEII, 24 AUGUST 79 AD ===",
	"You are Marcus, a merchant of Pompeii. A voice speaks inside your head: someone from a time far beyond yours, looking out through your eyes.",
	"Whatever either of you carries, the other can use. Your possessions are now shared across time.",
	"Vesuvius will erupt within hours. Gather evidence in both eras and convince the city official, the high priest and the senator. Then persuade the harbor master to carry the people out to sea.",
	"Type 'help' for commands, or 'look' to see where Marcus stands.",
}

func (t *turn) take(arg string) {
	if arg == "" {
		t.say("Take what?")
		return
	}
	item := command.ResolveItem(arg)
	if !t.s.removeItemAt(t.s.CurrentLocation, t.tl, item) {
		t.say(fmt.Sprintf("You don't see any %s here.", missingName(arg, item)))
		return
	}
	t.s.addItem(item)

	name := world.DisplayName(item)
	if t.tl == world.Past {
		t.say(fmt.Sprintf("Marcus picks up the %s.", name))
	} else {
		t.say(fmt.Sprintf("You pick up the %s.", name))
	}

	info, ok := world.GetItem(item)
	if !ok {
		return
	}
	switch info.Kind {
	case world.KindVolcanicEvidence:
		t.s.QuestProgress.FoundVolcanicEvidence = true
	case world.KindHistoricalRecord:
		t.s.QuestProgress.FoundHistoricalRecords = true
	}
	if info.Hint != "" {
		t.say(info.Hint)
	}
}

// missingName names an item that is not here: the known item in words,
// or the argument without its article.
func missingName(arg string, item world.ItemID) string {
	if item.IsValid() {
		return strings.ReplaceAll(string(item), "_", " ")
	}
	return command.StripArticle(arg)
}

func (t *turn) inventory() {
	names := joinNames(t.s.Inventory)
	switch {
	case t.tl == world.Past && len(t.s.Inventory) == 0:
		t.say("Marcus is carrying nothing.")
	case t.tl == world.Past:
		t.say("Marcus is carrying: " + names)
	case len(t.s.Inventory) == 0:
		t.say("Your inventory is empty.")
	default:
		t.say("Your inventory: " + names)
	}
	if t.s.TimePortalActive {
		t.say("(Items are shared between you and Marcus across both timelines.)")
	}
}

func (t *turn) open(arg string) {
	switch {
	case arg == "":
		t.say("Open what?")
	case command.IsMap(arg):
		t.openMap()
	case command.IsVase(arg):
		t.openVase()
	case strings.Contains(arg, "door") || strings.Contains(arg, "chamber"):
		t.openDoor()
	default:
		t.say("You can't open that.")
	}
}

func (t *turn) openMap() {
	if !slices.ContainsFunc(t.s.Inventory, world.IsMapItem) {
		t.say("You don't have a map.")
		return
	}
	t.s.IsMapOpen = !t.s.IsMapOpen
	if t.s.IsMapOpen {
		t.say("You unfold the tourist map.")
	} else {
		t.say("You fold the map away.")
	}
}

// openVase is the portal-activation transition. It happens once per
// session: the three latches are set together and the past console is
// replaced, not appended to.
func (t *turn) openVase() {
	switch {
	case !t.s.HasItem(world.AncientVase):
		t.say("You need to take the vase first.")
	case t.s.HasOpenedVase:
		t.say("The vase is already open.")
	default:
		t.s.HasOpenedVase = true
		t.s.HasDiscoveredAncientConsole = true
		t.s.TimePortalActive = true
		t.s.PastConsole = slices.Clone(portalIntro)
		t.say(
			"You lift the lid of the vase. Light pours out, and for a moment you are standing in two places at once.",
			"A second console has opened: you can now see and act in ancient Pompeii through Marcus.",
		)
	}
}

// openDoor works only from the past, where the doors are still whole.
// Among the doors within reach whose key is held, the first still locked
// one opens; only when all of them are open is that reported.
func (t *turn) openDoor() {
	const refusal = "The door is locked, or you have the wrong key."
	if t.tl != world.Past {
		t.say(refusal)
		return
	}
	here := t.s.CurrentLocation
	var alreadyOpen []world.LocationID
	for _, rule := range world.DoorRules() {
		if here != rule.Unlocks && !world.Adjacent(here, rule.Unlocks) {
			continue
		}
		if !t.s.HasItem(rule.Key) {
			continue
		}
		if t.s.IsUnlocked(rule.Unlocks) {
			alreadyOpen = append(alreadyOpen, rule.Unlocks)
			continue
		}
		dest, _ := world.GetLocation(rule.Unlocks)
		t.s.unlock(rule.Unlocks)
		t.say(
			fmt.Sprintf("Marcus turns the %s in the lock. The way to %s swings open.", world.DisplayName(rule.Key), dest.Name[world.Past]),
			"Centuries later, the same passage clears in the ruins.",
		)
		return
	}
	if len(alreadyOpen) > 0 {
		dest, _ := world.GetLocation(alreadyOpen[0])
		t.say(fmt.Sprintf("The way to %s is already open.", dest.Name[world.Past]))
		return
	}
	t.say(refusal)
}
