package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jwebster45206/pompeii/pkg/world"
)

func main() {
	dump := flag.Bool("dump", false, "print the world data as JSON after validating it")
	flag.Parse()

	fmt.Println("Validating world data...")

	errs := world.Validate()
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed with %d error(s):\n", len(errs))
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "  - %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("World data is valid! %d locations, %d items, %d residents.\n",
		len(world.LocationOrder), len(world.ItemOrder), len(world.NPCOrder))

	if *dump {
		if err := dumpWorld(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to dump world: %v\n", err)
			os.Exit(1)
		}
	}
}

type worldDump struct {
	Locations []world.Location `json:"locations"`
	Items     []world.Item     `json:"items"`
	NPCs      []world.NPC      `json:"npcs"`
	Doors     []world.DoorRule `json:"doors"`
}

func dumpWorld() error {
	var d worldDump
	for _, id := range world.LocationOrder {
		loc, _ := world.GetLocation(id)
		d.Locations = append(d.Locations, loc)
	}
	for _, id := range world.ItemOrder {
		item, _ := world.GetItem(id)
		d.Items = append(d.Items, item)
	}
	for _, id := range world.NPCOrder {
		npc, _ := world.GetNPC(id)
		d.NPCs = append(d.NPCs, npc)
	}
	d.Doors = world.DoorRules()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
