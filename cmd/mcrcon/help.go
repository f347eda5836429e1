// =============================================================================
// help.go - Help System (REPL Commands and Server Commands)
// =============================================================================
//
// This file implements the REPL help system:
//   - ".help"         Overview of dot-commands and server commands
//   - ".help <topic>" Detailed help for one command
//
// Help text is organized into two dictionaries:
//   - replHelp:    Dot-commands handled locally by the REPL
//   - commandHelp: Server commands with typed results (list, gamerule, ...)
//
// Any other server command can still be typed; it is sent verbatim and the
// reply printed as-is.
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// replHelp documents the dot-commands.
//
// GO CONCEPT: Map Literals for Lookup Tables
// -------------------------------------------
// map[string]string literals make static lookup tables. Lookups use the
// comma-ok form: `text, ok := replHelp[key]`.
//
// Compare with Python: `help = {"quit": "..."}` and `help.get(key)`.
var replHelp = map[string]string{
	"help": `.help [command]
  Show the command overview, or detailed help for one command.

  Examples:
    .help
    .help gamerule`,

	"raw": `.raw <command>
  Send a command verbatim, bypassing argument checks, and print the
  server's reply unchanged.

  Example:
    .raw tellraw @a {"text":"hi"}`,

	"status": `.status
  Show the server address and connection state.`,

	"quit": `.quit
  Disconnect and exit. Ctrl-D does the same.`,
}

// commandHelp documents the server commands with typed results.
var commandHelp = map[string]string{
	"list": `list [uuids]
  List online players, one per line. With "uuids", each player's UUID
  is shown after the name.`,

	"gamerule": `gamerule <rule> [value]
  Query or set a game rule. Numeric rules (randomTickSpeed, spawnRadius,
  maxEntityCramming, playersSleepingPercentage, maxCommandChainLength, ...)
  take integers; fractional values are rounded. A number given for any
  other rule is sent as typed and the server checks it. Otherwise rules
  take true or false.

  Examples:
    gamerule doDaylightCycle
    gamerule keepInventory true
    gamerule randomTickSpeed 3`,

	"give": `give <target> <item> [count]
  Give items to a player or selector (@p, @r, @a, @e, @s). Count
  defaults to 1.

  Example:
    give Alice minecraft:apple 3`,

	"kill": `kill <target>
  Kill the entities matched by a player name or selector.

  Example:
    kill @e[type=minecraft:zombie]`,

	"say": `say <message>
  Broadcast a message to all players.`,

	"time": `time query <daytime|gametime|day>
time set <ticks>
time add <ticks>
  Query or change the world time. One day is 24000 ticks.

  Examples:
    time query daytime
    time set 1000`,

	"save-all": `save-all [flush]
  Save the world. With "flush", all chunks are written to disk
  immediately.`,

	"stop": `stop
  Save the world and stop the server. The connection closes afterwards.`,

	"seed": `seed
  Show the world seed.`,

	"advancement": `advancement <grant|revoke> <target> everything
advancement <grant|revoke> <target> <only|from|through|until> <advancement>[/<criterion>]
  Grant or revoke advancements.

  Examples:
    advancement grant Alice everything
    advancement revoke @p only minecraft:story/mine_stone`,
}

// printHelp writes the overview when topic is empty, otherwise the entry
// for topic. A leading "." or "/" in topic is ignored.
func printHelp(w io.Writer, topic string) {
	if topic == "" {
		printHelpOverview(w)
		return
	}

	key := strings.ToLower(topic)
	key = strings.TrimLeft(key, "./")

	if text, ok := replHelp[key]; ok {
		fmt.Fprintln(w, text)
		return
	}
	if text, ok := commandHelp[key]; ok {
		fmt.Fprintln(w, text)
		return
	}

	fmt.Fprintf(w, "No help for '%s'. Type .help to see available commands.\n", topic)
}

// printHelpOverview writes the full command listing.
func printHelpOverview(w io.Writer) {
	fmt.Fprint(w, `REPL Commands:
  .help [cmd]       Show help (or help for a specific command)
  .raw <command>    Send a command verbatim
  .status           Show connection status
  .quit             Exit

Server Commands:
`)

	// GO CONCEPT: Sorting Map Keys
	// -----------------------------
	// Map iteration order is deliberately randomized in Go, so keys are
	// collected and sorted for stable output.
	//
	// Compare with Python: dicts keep insertion order; `sorted(d)` is
	// still the way to get alphabetical order.
	names := make([]string, 0, len(commandHelp))
	for name := range commandHelp {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		usage, _, _ := strings.Cut(commandHelp[name], "\n")
		fmt.Fprintf(w, "  %s\n", usage)
	}

	fmt.Fprint(w, `
Any other input is sent to the server as-is. A leading "/" is optional.
`)
}
