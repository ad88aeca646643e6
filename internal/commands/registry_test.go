package commands_test

import (
	"strings"
	"testing"

	"taskminder/internal/commands"
)

func TestDefaultRegistry(t *testing.T) {
	var names []string
	for _, c := range commands.DefaultRegistry.All() {
		names = append(names, c.Name())
	}
	want := "add,done,edit,generate,help,list,login,logout,rm,ui,version,watch"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("expected commands %q, got %q", want, got)
	}

	aliases := map[string]string{"create": "add", "toggle": "done", "delete": "rm", "ls": "list", "ai": "generate", "remind": "watch", "tui": "ui"}
	for alias, name := range aliases {
		c, ok := commands.DefaultRegistry.Find(alias)
		if !ok || c.Name() != name {
			t.Errorf("alias %s: expected %s", alias, name)
		}
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.DoneCmd{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := r.Register(&commands.DoneCmd{})
	if err == nil || err.Error() != "command already registered: done" {
		t.Errorf("expected duplicate name error, got %v", err)
	}
	if got := len(r.All()); got != 1 {
		t.Errorf("expected 1 command, got %d", got)
	}
}
