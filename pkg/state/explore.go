package state

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/pompeii/pkg/world"
)

func (t *turn) look() {
	loc, ok := world.GetLocation(t.s.CurrentLocation)
	if !ok {
		t.say("You are in an unknown location.")
		return
	}
	t.say(loc.Narrative[t.tl])

	var exits []string
	for _, dir := range world.Directions {
		dest, ok := loc.Exits[dir]
		if !ok || !t.s.CanEnter(dest) {
			continue
		}
		destLoc, _ := world.GetLocation(dest)
		exits = append(exits, fmt.Sprintf("%s (%s)", dir, destLoc.Name[t.tl]))
	}
	if len(exits) == 0 {
		t.say("There are no obvious exits.")
	} else {
		t.say("Exits: " + strings.Join(exits, ", "))
	}

	if items := t.s.ItemsAt(loc.ID, t.tl); len(items) > 0 {
		t.say("You see: " + joinNames(items))
	}

	if t.tl == world.Past && len(loc.NPCs) > 0 {
		t.say("People here: " + joinNames(loc.NPCs))
	}
}

func (t *turn) move(arg string) {
	loc, ok := world.GetLocation(t.s.CurrentLocation)
	if !ok {
		t.say("You are in an unknown location.")
		return
	}
	dest, ok := loc.Exits[world.Direction(arg)]
	if !ok {
		t.say("You can't go that way.")
		return
	}
	destLoc, ok := world.GetLocation(dest)
	if !ok {
		t.say("You can't go that way.")
		return
	}
	if !t.s.CanEnter(dest) {
		t.say(destLoc.LockedHint[t.tl])
		return
	}

	t.s.CurrentLocation = dest
	t.say(destLoc.Narrative[t.tl])
}

func joinNames[T ~string](keys []T) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = world.DisplayName(k)
	}
	return strings.Join(names, ", ")
}
