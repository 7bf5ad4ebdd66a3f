// Command import_cards converts a JSON card export into the YAML content
// file the engine loads. Unknown fields in the export are ignored; only
// the attributes the registry understands are carried over.
//
// Usage: go run scripts/import_cards.go <cards.json> [cards.yaml]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// cardExport is one record of the JSON export.
type cardExport struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Race           string   `json:"race"`
	Cost           int      `json:"cost"`
	Attack         int      `json:"attack"`
	Health         int      `json:"health"`
	Class          string   `json:"class"`
	Collectible    bool     `json:"collectible"`
	RequiresTarget bool     `json:"requires_target"`
	ChooseCards    []string `json:"choose_cards"`
}

type cardYAML struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	Race           string   `yaml:"race,omitempty"`
	Cost           int      `yaml:"cost"`
	Attack         int      `yaml:"attack,omitempty"`
	Health         int      `yaml:"health,omitempty"`
	Class          string   `yaml:"class,omitempty"`
	Collectible    bool     `yaml:"collectible,omitempty"`
	RequiresTarget bool     `yaml:"requires_target,omitempty"`
	ChooseCards    []string `yaml:"choose_cards,omitempty"`
}

type fileYAML struct {
	Cards []cardYAML `yaml:"cards"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <cards.json> [cards.yaml]", os.Args[0])
	}
	inPath := os.Args[1]
	outPath := "config/cards.yaml"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatalf("read export: %v", err)
	}

	var exports []cardExport
	if err := json.Unmarshal(data, &exports); err != nil {
		log.Fatalf("parse export: %v", err)
	}

	out := fileYAML{Cards: make([]cardYAML, 0, len(exports))}
	seen := make(map[string]bool, len(exports))
	skipped := 0
	for _, c := range exports {
		if c.ID == "" || c.Type == "" {
			skipped++
			continue
		}
		if seen[c.ID] {
			log.Fatalf("duplicate card id %q in export", c.ID)
		}
		seen[c.ID] = true
		out.Cards = append(out.Cards, cardYAML(c))
	}
	sort.Slice(out.Cards, func(i, j int) bool { return out.Cards[i].ID < out.Cards[j].ID })

	encoded, err := yaml.Marshal(out)
	if err != nil {
		log.Fatalf("encode content: %v", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		log.Fatalf("write content: %v", err)
	}

	fmt.Printf("wrote %d cards to %s (%d skipped)\n", len(out.Cards), outPath, skipped)
}
