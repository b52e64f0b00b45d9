package ui

import (
	"testing"

	"github.com/atomicstack/tmux-menubar/internal/menu"
)

func TestPaletteEntriesCarryPathAndSkipDuplicates(t *testing.T) {
	items := []menu.Item{
		{Kind: menu.ItemCommand, CommandID: "save", Label: "Save", Enabled: true},
		menu.Separator(),
		{Kind: menu.ItemSubmenu, Label: "Recent", Children: []menu.Item{
			{Kind: menu.ItemCommand, CommandID: "open", Label: "Open", Accelerator: "Ctrl+O"},
			{Kind: menu.ItemCommand, CommandID: "save", Label: "Save again", Enabled: true},
		}},
	}

	entries := paletteEntries(items)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Label != "Save" || entries[0].Disabled {
		t.Fatalf("expected enabled Save first, got %+v", entries[0])
	}
	open := entries[1]
	if open.Label != "Recent: Open" {
		t.Fatalf("expected path-prefixed label, got %q", open.Label)
	}
	if open.Hint != "Ctrl+O" || !open.Disabled {
		t.Fatalf("expected disabled entry with accelerator hint, got %+v", open)
	}
}
