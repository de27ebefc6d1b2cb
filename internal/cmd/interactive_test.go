package cmd_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/vvatanabe/shiptracker"
	"github.com/vvatanabe/shiptracker/internal/cmd"
)

func testRunInteractiveAll(t *testing.T, store shiptracker.Store, wantErr bool) {
	tests := []struct {
		name    string
		command string
		params  []string
	}{
		{
			name:    "run init",
			command: "init",
		},
		{
			name:    "run create",
			command: "create",
			params:  []string{"Widget", "Gadget", "Factory", "Warehouse"},
		},
		{
			name:    "run track",
			command: "track",
			params:  []string{"0"},
		},
		{
			name:    "run ls",
			command: "ls",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &cmd.Interactive{
				Host: shiptracker.NewHost(store),
				Out:  &out,
			}
			c.Run(context.Background(), tt.command, tt.params)
			gotErr := strings.HasPrefix(out.String(), "ERROR:")
			if gotErr != wantErr {
				t.Errorf("Run() output = %q, wantErr %v", out.String(), wantErr)
			}
		})
	}
}

func TestRunInteractive(t *testing.T) {
	t.Parallel()
	testRunInteractiveAll(t, shiptracker.NewMemoryStore(), false)
}

func TestRunInteractiveStoreFailed(t *testing.T) {
	t.Parallel()
	testRunInteractiveAll(t, failingStore(), true)
}

func TestRunInteractiveOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		command string
		params  []string
		want    string
	}{
		{
			name:    "help",
			command: "help",
			want:    "... this is Interactive HELP!",
		},
		{
			name:    "ls on empty ledger",
			command: "ls",
			want:    "Ledger is empty!\n",
		},
		{
			name:    "create with missing params",
			command: "create",
			params:  []string{"Widget"},
			want:    "ERROR: Usage: create <name> <description> <origin> <dest>\n",
		},
		{
			name:    "track without id",
			command: "track",
			want:    "ERROR: Usage: track <id>\n",
		},
		{
			name:    "track with non integer id",
			command: "id",
			params:  []string{"abc"},
			want:    "ERROR: Shipment id must be an integer: \"abc\"\n",
		},
		{
			name:    "track unknown id",
			command: "track",
			params:  []string{"-1"},
			want:    "ERROR: Shipment [-1] not found!\n",
		},
		{
			name:    "unknown command",
			command: "foo",
			want:    " ... unrecognized command!\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			c := &cmd.Interactive{
				Host: shiptracker.NewHost(shiptracker.NewMemoryStore()),
				Out:  &out,
			}
			c.Run(context.Background(), tt.command, tt.params)
			if !strings.HasPrefix(out.String(), tt.want) {
				t.Errorf("Run() output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}
