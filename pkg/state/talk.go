package state

import (
	"fmt"

	"github.com/jwebster45206/pompeii/pkg/command"
	"github.com/jwebster45206/pompeii/pkg/world"
)

const (
	msgPrimariesConvinced = "The city official, the high priest and the senator have all agreed to evacuate! Now convince the harbor master to ready the ships."
	msgVictory            = "*** The harbor master orders every ship to sea. Pompeii is evacuating. Across two thousand years, you and Marcus have saved thousands of lives. ***"
)

func (t *turn) talk(arg string) {
	if t.tl != world.Past {
		t.say("There is no one here to talk to. Only tourists and ruins remain.")
		return
	}
	if arg == "" {
		t.say("Talk to whom?")
		return
	}
	loc, ok := world.GetLocation(t.s.CurrentLocation)
	id := command.NPCKey(arg)
	if !ok || !loc.HasNPC(id) {
		t.say(fmt.Sprintf("There is no one called %q here.", arg))
		return
	}
	npc, ok := world.GetNPC(id)
	if !ok {
		t.say(fmt.Sprintf("There is no one called %q here.", arg))
		return
	}

	if t.s.IsConvinced(id) {
		t.say(fmt.Sprintf("The %s is already convinced and preparing to leave.", world.DisplayName(id)))
		return
	}

	if len(npc.RequiresConvinced) > 0 {
		if !t.allConvinced(npc.RequiresConvinced) {
			t.say(npc.Greeting, npc.NeedOthers)
			return
		}
	} else if !t.allHeld(npc.Requires) {
		t.say(npc.Greeting, npc.Skeptical)
		return
	}

	t.s.convince(id)
	t.say(npc.Convinced)

	if npc.Gives != "" && !t.s.HasItem(npc.Gives) {
		t.s.addItem(npc.Gives)
		t.say(fmt.Sprintf("The %s hands Marcus the %s.", world.DisplayName(id), world.DisplayName(npc.Gives)))
		if info, ok := world.GetItem(npc.Gives); ok && info.Hint != "" {
			t.say(info.Hint)
		}
	}

	switch {
	case id == world.TerminalNPC:
		t.say(msgVictory)
	case t.allConvinced(world.PrimaryNPCs):
		t.say(msgPrimariesConvinced)
	}
}

func (t *turn) allHeld(items []world.ItemID) bool {
	for _, item := range items {
		if !t.s.HasItem(item) {
			return false
		}
	}
	return true
}

func (t *turn) allConvinced(ids []world.NPCID) bool {
	for _, id := range ids {
		if !t.s.IsConvinced(id) {
			return false
		}
	}
	return true
}
