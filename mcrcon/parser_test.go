package mcrcon

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCommandParsing(t *testing.T) {
	parser := NewCommandParser()

	tests := []struct {
		name     string
		input    string
		command  string
		expected string
	}{
		{"List", "list", "list", "list"},
		{"List with slash", "/list", "list", "list"},
		{"List uuids", "list uuids", "list", "list uuids"},
		{"GameRule query", "gamerule doDaylightCycle", "gamerule", "gamerule doDaylightCycle"},
		{"GameRule set bool", "gamerule keepInventory TRUE", "gamerule", "gamerule keepInventory true"},
		{"GameRule set number", "gamerule randomTickSpeed 3", "gamerule", "gamerule randomTickSpeed 3"},
		{"GameRule rounds", "gamerule maxCommandChainLength 12.7", "gamerule", "gamerule maxCommandChainLength 13"},
		{"GameRule unlisted numeric", "gamerule minecartMaxSpeed 16", "gamerule", "gamerule minecartMaxSpeed 16"},
		{"Give", "give Alice minecraft:apple", "give", "give Alice minecraft:apple 1"},
		{"Give count", "give @a minecraft:diamond 64", "give", "give @a minecraft:diamond 64"},
		{"Kill", "kill @e", "kill", "kill @e"},
		{"Say", "say  hello   world ", "say", "say hello   world"},
		{"Time query", "time query daytime", "time", "time query daytime"},
		{"Time set", "TIME set 1000", "time", "time set 1000"},
		{"Time add", "time add 24000", "time", "time add 24000"},
		{"Save", "save-all", "save-all", "save-all"},
		{"Save flush", "save-all flush", "save-all", "save-all flush"},
		{"Stop", "stop", "stop", "stop"},
		{"Seed", "seed", "seed", "seed"},
		{"Advancement everything", "advancement grant Alice everything", "advancement", "advancement grant Alice everything"},
		{"Advancement only", "advancement revoke @p only minecraft:story/root", "advancement",
			"advancement revoke @p only minecraft:story/root"},
		{"Raw", "tp Alice 0 64 0", "tp", "tp Alice 0 64 0"},
		{"Raw with slash", "/weather clear", "weather", "weather clear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name() != tt.command {
				t.Errorf("Name = %q, want %q", got.Name(), tt.command)
			}
			if got.WireText() != tt.expected {
				t.Errorf("got %q, want %q", got.WireText(), tt.expected)
			}
		})
	}
}

func TestCommandParsingErrors(t *testing.T) {
	parser := NewCommandParser()

	tests := []struct {
		name  string
		input string
	}{
		{"Empty command", ""},
		{"Only slash", "/"},
		{"List extra", "list everyone"},
		{"GameRule missing rule", "gamerule"},
		{"GameRule bad value", "gamerule keepInventory maybe"},
		{"GameRule bool for numeric", "gamerule randomTickSpeed true"},
		{"Give missing item", "give Alice"},
		{"Give bad count", "give Alice minecraft:apple many"},
		{"Give zero count", "give Alice minecraft:apple 0"},
		{"Kill missing target", "kill"},
		{"Say empty", "say"},
		{"Time missing value", "time query"},
		{"Time query numeric", "time query 1000"},
		{"Time set named", "time set day"},
		{"Save extra", "save-all now"},
		{"Stop extra", "stop now"},
		{"Seed extra", "seed 1"},
		{"Advancement short", "advancement grant Alice"},
		{"Advancement bad scope", "advancement grant Alice all"},
		{"Too long", "tp " + strings.Repeat("a", MaxCommandLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parser.Parse(tt.input)
			if err == nil {
				t.Fatalf("expected error, got command %q", cmd.WireText())
			}
			if !errors.Is(err, ErrArgument) {
				t.Errorf("got %v, want ErrArgument", err)
			}
		})
	}
}

func TestCommandParsingUnlistedNumericRule(t *testing.T) {
	parser := NewCommandParser()

	got, err := parser.Parse("gamerule minecartMaxSpeed 16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(RawCommand); !ok {
		t.Errorf("got %T, want RawCommand", got)
	}

	reply, err := got.Run(context.Background(), &replyExecutor{reply: "Gamerule minecartMaxSpeed is now set to: 16"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reply != "Gamerule minecartMaxSpeed is now set to: 16" {
		t.Errorf("reply = %q", reply)
	}

	_, err = got.Run(context.Background(), &replyExecutor{reply: "Incorrect argument for command"})
	if !errors.Is(err, ErrIncorrectArgument) {
		t.Errorf("got %v, want ErrIncorrectArgument", err)
	}
}
