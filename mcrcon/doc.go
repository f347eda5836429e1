// Package mcrcon implements a client for the Minecraft remote console
// (RCON) protocol.
//
// # Protocol Overview
//
// RCON is a binary request/response protocol over TCP. Every packet is
// length-prefixed and little-endian:
//
//	Packet:        <size int32> <id int32> <type int32> <body> \x00 \x00
//	Auth request:  type 3, body = shared secret
//	Auth reply:    type 2, id = request id (or -1 on a bad secret)
//	Command:       type 2, body = command line without leading slash
//	Reply:         type 0, body = free text
//
// Replies carry no usable request identifier, so a client may have at
// most one command awaiting a reply at a time. The Correlator enforces
// this and matches each transport event to the oldest waiter of its kind.
//
// # Basic Usage
//
//	client := mcrcon.NewClient(mcrcon.Options{
//	    Host:     "127.0.0.1",
//	    Password: "hunter2",
//	})
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Disconnect()
//
//	players, err := client.ListPlayers(ctx, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Commands
//
// Each catalog command is a CommandSpec: an Encode function that
// validates arguments and produces the wire text, and a Decode function
// that turns the reply into a typed result. Validation happens in
// Prepare, before any I/O:
//
//	cmd, err := mcrcon.GiveCommand.Prepare(mcrcon.GiveArgs{
//	    Target: "Alice",
//	    Item:   "minecraft:apple",
//	    Count:  3,
//	})
//	if err != nil {
//	    return err // KindArgument
//	}
//	_, err = cmd.Execute(ctx, client)
//
// The catalog covers list, gamerule, give, kill, say, time, save-all,
// stop, seed and advancement. Anything else can be sent with SendRaw.
//
// # Parsing Commands
//
// To parse command text (e.g., from user input):
//
//	parser := mcrcon.NewCommandParser()
//	cmd, err := parser.Parse("time query daytime")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.Run(ctx, cmd)
//
// # Errors
//
// Every error returned by the package is an *Error carrying an ErrorKind.
// Use errors.Is with the Err sentinels, or KindOf:
//
//	if errors.Is(err, mcrcon.ErrTargetNotFound) {
//	    fmt.Println("nobody by that name is online")
//	}
//
// # Thread Safety
//
// The Client type is safe for concurrent use from multiple goroutines.
// Concurrent commands are serialized so replies cannot be mismatched.
package mcrcon
