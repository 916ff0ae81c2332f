package mermaid

import "testing"

func TestInventory(t *testing.T) {
	response := "Intro\n\n" +
		fence + "mermaid\ngraph TD\nA-->B\n" + fence + "\n\n" +
		"Notes\n\n" +
		fence + "json title=meta\n{}\n" + fence + "\n\n" +
		fence + "\nplain\n" + fence + "\n"

	blocks, err := Inventory(response)
	if err != nil {
		t.Fatalf("Inventory() error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("Inventory() found %d blocks, want 3", len(blocks))
	}

	if !blocks[0].IsDiagram() || blocks[0].Lines != 2 {
		t.Errorf("blocks[0] = %+v, want mermaid block with 2 lines", blocks[0])
	}
	if blocks[0].Content != "graph TD\nA-->B\n" {
		t.Errorf("blocks[0].Content = %q", blocks[0].Content)
	}
	if blocks[1].Lang != "json" {
		t.Errorf("blocks[1].Lang = %q, want json", blocks[1].Lang)
	}
	if blocks[2].Lang != "" || blocks[2].IsDiagram() {
		t.Errorf("blocks[2] = %+v, want untagged block", blocks[2])
	}
}

func TestInventory_Empty(t *testing.T) {
	blocks, err := Inventory("")
	if err != nil {
		t.Fatalf("Inventory() error: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("Inventory(\"\") = %v, want none", blocks)
	}
}
