package state

import (
	"fmt"

	"github.com/jwebster45206/pompeii/pkg/world"
)

func (t *turn) status() {
	if !t.s.TimePortalActive {
		t.say("Your mission has not begun. That unusual vase in the Forum looks out of place: find it and open it.")
		return
	}

	qp := t.s.QuestProgress
	t.say(
		"=== Mission status ===",
		"Volcanic evidence found: "+yesNo(qp.FoundVolcanicEvidence),
		"Historical records found: "+yesNo(qp.FoundHistoricalRecords),
	)
	for _, id := range world.GatedLocations {
		loc, _ := world.GetLocation(id)
		label := "locked"
		if qp.questUnlocked(id) {
			label = "unlocked"
		}
		t.say(fmt.Sprintf("%s: %s", loc.Name[world.Past], label))
	}
	for _, id := range world.NPCOrder {
		label := "not convinced"
		if t.s.IsConvinced(id) {
			label = "convinced"
		}
		t.say(fmt.Sprintf("%s: %s", world.DisplayName(id), label))
	}

	if t.s.IsConvinced(world.TerminalNPC) {
		t.say("The evacuation is underway. The people of Pompeii are escaping by sea!")
		return
	}
	t.say(fmt.Sprintf("Residents convinced: %d of %d", len(t.s.ConvincedResidents), len(world.NPCOrder)))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
