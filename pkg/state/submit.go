package state

import (
	"strings"

	"github.com/jwebster45206/pompeii/pkg/command"
	"github.com/jwebster45206/pompeii/pkg/world"
)

const msgUnknownCommand = "I don't understand that command. Type 'help' for a list of commands."

// Submit runs one command from a timeline and returns the next state.
// prev is never modified.
func Submit(prev SessionState, input string, tl world.Timeline) SessionState {
	next, _ := Step(prev, input, tl)
	return next
}

// Step is Submit that also returns the lines appended to the issuing
// console: the "> input" echo followed by the result lines.
//
// Any timeline other than Past is treated as Present.
func Step(prev SessionState, input string, tl world.Timeline) (SessionState, []string) {
	if tl != world.Past {
		tl = world.Present
	}
	t := &turn{s: prev.Clone(), tl: tl, cmd: command.Parse(input)}
	t.dispatch()

	out := make([]string, 0, len(t.out)+1)
	out = append(out, "> "+t.cmd.Raw)
	out = append(out, t.out...)
	t.s.appendConsole(tl, out...)
	return t.s, out
}

// turn carries one command through the transition. Handlers mutate the
// cloned state and collect result lines in out.
type turn struct {
	s   SessionState
	tl  world.Timeline
	cmd command.Command
	out []string
}

func (t *turn) say(lines ...string) {
	t.out = append(t.out, lines...)
}

// dispatch is first-match: the first condition satisfied handles the
// command and no later branch is evaluated.
func (t *turn) dispatch() {
	text, verb, arg := t.cmd.Text, t.cmd.Verb, t.cmd.Arg
	switch {
	case text == "help":
		t.help()
	case strings.HasPrefix(text, "look"):
		t.look()
	case verb == "take":
		t.take(arg)
	case verb == "open":
		t.open(arg)
	case text == "inventory":
		t.inventory()
	case verb == "go":
		t.move(arg)
	case verb == "talk":
		t.talk(arg)
	case text == "status":
		t.status()
	default:
		t.say(msgUnknownCommand)
	}
}

func (t *turn) help() {
	t.say("Available commands:")
	for _, e := range command.Reference {
		t.say("  " + e.Name + " - " + e.Description)
	}
}
