package mcrcon

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Reply grammar shared by the catalog.
var (
	listEmptyPrefix  = "There are 0 of a max"
	listNamePattern  = regexp.MustCompile(`(\w+)`)
	listUUIDPattern  = regexp.MustCompile(`(\w+).*?\(([\w-]+)\)`)
	ruleValuePattern = regexp.MustCompile(`(?:now|currently) set to: (.+)$`)
	boolPattern      = regexp.MustCompile(`(?i)^(true|false)$`)
	trailingInteger  = regexp.MustCompile(`-?\d+$`)
	seedPattern      = regexp.MustCompile(`\[(-?\d+)\]`)
)

const (
	noPlayerFoundPrefix  = "No player was found"
	unknownItemPrefix    = "Unknown item"
	noEntityFoundPrefix  = "No entity was found"
	entityRequiredPrefix = "An entity is required to run this command here"
	gavePrefix           = "Gave"
	timeQueryPrefix      = "The time is"
	timeSetPrefix        = "Set the time to"
	savedMarker          = "Saved the game"
	stoppingPrefix       = "Stopping the server"
)

// Done is the result of commands that report only success or failure.
type Done struct{}

// ListArgs are the arguments of the list command.
type ListArgs struct {
	UUIDs bool
}

// ListCommand lists online players.
var ListCommand = &CommandSpec[ListArgs, []PlayerEntry]{
	Name: "list",
	Encode: func(args ListArgs) (string, error) {
		if args.UUIDs {
			return "list uuids", nil
		}
		return "list", nil
	},
	Decode: decodeList,
}

func decodeList(args ListArgs, reply string) ([]PlayerEntry, error) {
	if strings.HasPrefix(reply, listEmptyPrefix) {
		return []PlayerEntry{}, nil
	}

	_, names, ok := strings.Cut(reply, ":")
	if !ok {
		return nil, newUnexpectedReplyError("list", reply)
	}

	players := []PlayerEntry{}
	for _, segment := range strings.Split(names, ",") {
		if args.UUIDs {
			match := listUUIDPattern.FindStringSubmatch(segment)
			if match == nil {
				continue
			}
			players = append(players, PlayerEntry{Name: match[1], UUID: match[2]})
		} else {
			match := listNamePattern.FindStringSubmatch(segment)
			if match == nil {
				continue
			}
			players = append(players, PlayerEntry{Name: match[1]})
		}
	}
	return players, nil
}

// GameRuleArgs are the arguments of the gamerule command. A nil Value
// queries the rule; otherwise the rule is set.
type GameRuleArgs struct {
	Rule  string
	Value *RuleValue
}

// GameRuleCommand queries or sets a game rule. The result is the value
// the server reports after the operation.
var GameRuleCommand = &CommandSpec[GameRuleArgs, RuleValue]{
	Name:   "gamerule",
	Encode: encodeGameRule,
	Decode: decodeGameRule,
}

func encodeGameRule(args GameRuleArgs) (string, error) {
	if args.Rule == "" || strings.ContainsAny(args.Rule, " \t\n") {
		return "", newArgumentError("gamerule", "invalid rule name", args.Rule)
	}
	if args.Value == nil {
		return "gamerule " + args.Rule, nil
	}

	value := *args.Value
	if IsNumericGameRule(args.Rule) {
		if value.IsBool() {
			return "", newArgumentError("gamerule", "rule must be set to an integer", args.Rule)
		}
		rounded := math.Round(value.Number())
		return fmt.Sprintf("gamerule %s %d", args.Rule, int64(rounded)), nil
	}
	if !value.IsBool() {
		return "", newArgumentError("gamerule", "rule must be set to a boolean", args.Rule)
	}
	return fmt.Sprintf("gamerule %s %t", args.Rule, value.Bool()), nil
}

func decodeGameRule(args GameRuleArgs, reply string) (RuleValue, error) {
	match := ruleValuePattern.FindStringSubmatch(strings.TrimSpace(reply))
	if match == nil || !strings.Contains(reply, args.Rule) {
		return RuleValue{}, newUnexpectedReplyError("gamerule", reply)
	}

	raw := strings.TrimSpace(match[1])
	var value RuleValue
	if boolPattern.MatchString(raw) {
		value = BoolValue(strings.EqualFold(raw, "true"))
	} else {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return RuleValue{}, newUnexpectedReplyError("gamerule", reply)
		}
		value = NumberValue(n)
	}

	if args.Value != nil {
		if !strings.Contains(reply, "now set to") {
			return RuleValue{}, newUnexpectedReplyError("gamerule", reply)
		}
		want := *args.Value
		if !want.IsBool() {
			want = NumberValue(math.Round(want.Number()))
		}
		if value != want {
			return RuleValue{}, newUnexpectedReplyError("gamerule", reply)
		}
	}
	return value, nil
}

// GiveArgs are the arguments of the give command. A zero Count gives one item.
type GiveArgs struct {
	Target string
	Item   string
	Count  int
}

// GiveCommand gives items to players.
var GiveCommand = &CommandSpec[GiveArgs, Done]{
	Name: "give",
	Encode: func(args GiveArgs) (string, error) {
		if err := checkWord("give", "target", args.Target); err != nil {
			return "", err
		}
		if err := checkWord("give", "item", args.Item); err != nil {
			return "", err
		}
		count := args.Count
		if count == 0 {
			count = 1
		}
		if count < 0 {
			return "", newArgumentError("give", "count must be positive", strconv.Itoa(count))
		}
		return fmt.Sprintf("give %s %s %d", args.Target, args.Item, count), nil
	},
	Decode: func(args GiveArgs, reply string) (Done, error) {
		switch {
		case strings.HasPrefix(reply, noPlayerFoundPrefix):
			return Done{}, &Error{Kind: KindTargetNotFound, Op: "give", Value: args.Target, Message: reply}
		case strings.HasPrefix(reply, unknownItemPrefix):
			return Done{}, &Error{Kind: KindItemNotFound, Op: "give", Value: args.Item, Message: reply}
		case !strings.HasPrefix(reply, gavePrefix):
			return Done{}, newUnexpectedReplyError("give", reply)
		}
		return Done{}, nil
	},
}

// KillArgs are the arguments of the kill command.
type KillArgs struct {
	Target string
}

// KillCommand kills entities.
var KillCommand = &CommandSpec[KillArgs, Done]{
	Name: "kill",
	Encode: func(args KillArgs) (string, error) {
		if err := checkWord("kill", "target", args.Target); err != nil {
			return "", err
		}
		return "kill " + args.Target, nil
	},
	Decode: func(args KillArgs, reply string) (Done, error) {
		if strings.HasPrefix(reply, noEntityFoundPrefix) || strings.HasPrefix(reply, entityRequiredPrefix) {
			return Done{}, &Error{Kind: KindTargetNotFound, Op: "kill", Value: args.Target, Message: reply}
		}
		return Done{}, nil
	},
}

// SayArgs are the arguments of the say command.
type SayArgs struct {
	Message string
}

// SayCommand broadcasts a message to all players.
var SayCommand = &CommandSpec[SayArgs, Done]{
	Name: "say",
	Encode: func(args SayArgs) (string, error) {
		if args.Message == "" {
			return "", newArgumentError("say", "message must not be empty", "")
		}
		if strings.ContainsAny(args.Message, "\r\n") {
			return "", newArgumentError("say", "message must be a single line", args.Message)
		}
		return "say " + args.Message, nil
	},
	Decode: func(SayArgs, string) (Done, error) {
		return Done{}, nil
	},
}

// TimeArgs are the arguments of the time command. Target is a query
// target (daytime, gametime, day) for TimeQuery and an integer tick count
// for TimeSet and TimeAdd.
type TimeArgs struct {
	Action TimeAction
	Target string
}

// TimeCommand queries or changes the world time. A query yields the
// reported time; set and add yield the new time when the server reports it.
var TimeCommand = &CommandSpec[TimeArgs, int64]{
	Name:   "time",
	Encode: encodeTime,
	Decode: decodeTime,
}

func encodeTime(args TimeArgs) (string, error) {
	_, numErr := strconv.ParseInt(args.Target, 10, 64)
	switch args.Action {
	case TimeQuery:
		if numErr == nil {
			return "", newArgumentError("time", "query target must be daytime, gametime or day", args.Target)
		}
		switch TimeQueryTarget(args.Target) {
		case TimeDaytime, TimeGametime, TimeDay:
		default:
			return "", newArgumentError("time", "query target must be daytime, gametime or day", args.Target)
		}
	case TimeSet, TimeAdd:
		if numErr != nil {
			return "", newArgumentError("time", "target must be an integer tick count", args.Target)
		}
	default:
		return "", newArgumentError("time", "action must be query, set or add", string(args.Action))
	}
	return fmt.Sprintf("time %s %s", args.Action, args.Target), nil
}

func decodeTime(args TimeArgs, reply string) (int64, error) {
	reply = strings.TrimSpace(reply)
	if args.Action == TimeQuery {
		if !strings.HasPrefix(reply, timeQueryPrefix) {
			return 0, newUnexpectedReplyError("time", reply)
		}
		match := trailingInteger.FindString(reply)
		if match == "" {
			return 0, newUnexpectedReplyError("time", reply)
		}
		return strconv.ParseInt(match, 10, 64)
	}

	if !strings.HasPrefix(reply, timeSetPrefix) {
		return 0, newUnexpectedReplyError("time", reply)
	}
	if match := trailingInteger.FindString(reply); match != "" {
		return strconv.ParseInt(match, 10, 64)
	}
	return 0, nil
}

// SaveArgs are the arguments of the save-all command.
type SaveArgs struct {
	Flush bool
}

// SaveCommand saves the world.
var SaveCommand = &CommandSpec[SaveArgs, Done]{
	Name: "save-all",
	Encode: func(args SaveArgs) (string, error) {
		if args.Flush {
			return "save-all flush", nil
		}
		return "save-all", nil
	},
	Decode: func(_ SaveArgs, reply string) (Done, error) {
		if !strings.Contains(reply, savedMarker) {
			return Done{}, newReplyError(KindSaveFailed, "save-all", reply)
		}
		return Done{}, nil
	},
}

// StopCommand stops the server.
var StopCommand = &CommandSpec[struct{}, Done]{
	Name: "stop",
	Encode: func(struct{}) (string, error) {
		return "stop", nil
	},
	Decode: func(_ struct{}, reply string) (Done, error) {
		if !strings.HasPrefix(reply, stoppingPrefix) {
			return Done{}, newReplyError(KindStopFailed, "stop", reply)
		}
		return Done{}, nil
	},
}

// SeedCommand reads the world seed.
var SeedCommand = &CommandSpec[struct{}, int64]{
	Name: "seed",
	Encode: func(struct{}) (string, error) {
		return "seed", nil
	},
	Decode: func(_ struct{}, reply string) (int64, error) {
		match := seedPattern.FindStringSubmatch(reply)
		if match == nil {
			return 0, newUnexpectedReplyError("seed", reply)
		}
		seed, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return 0, newUnexpectedReplyError("seed", reply)
		}
		return seed, nil
	},
}

// AdvancementArgs are the arguments of the advancement command.
// Advancement is required unless Scope is ScopeEverything; Criterion is
// optional and narrows the change to one criterion.
type AdvancementArgs struct {
	Action      AdvancementAction
	Target      string
	Scope       AdvancementScope
	Advancement string
	Criterion   string
}

// AdvancementCommand grants or revokes advancements.
var AdvancementCommand = &CommandSpec[AdvancementArgs, Done]{
	Name:   "advancement",
	Encode: encodeAdvancement,
	Decode: func(args AdvancementArgs, reply string) (Done, error) {
		if strings.HasPrefix(reply, noPlayerFoundPrefix) {
			return Done{}, &Error{Kind: KindTargetNotFound, Op: "advancement", Value: args.Target, Message: reply}
		}
		return Done{}, nil
	},
}

func encodeAdvancement(args AdvancementArgs) (string, error) {
	switch args.Action {
	case AdvancementGrant, AdvancementRevoke:
	default:
		return "", newArgumentError("advancement", "action must be grant or revoke", string(args.Action))
	}
	if err := checkWord("advancement", "target", args.Target); err != nil {
		return "", err
	}

	line := fmt.Sprintf("advancement %s %s %s", args.Action, args.Target, args.Scope)
	switch args.Scope {
	case ScopeEverything:
		return line, nil
	case ScopeOnly, ScopeFrom, ScopeThrough, ScopeUntil:
	default:
		return "", newArgumentError("advancement", "unknown scope", string(args.Scope))
	}

	if err := checkWord("advancement", "advancement", args.Advancement); err != nil {
		return "", err
	}
	line += " " + args.Advancement
	if args.Criterion != "" {
		line += "/" + args.Criterion
	}
	return line, nil
}

// checkWord rejects empty values and values containing whitespace.
func checkWord(op, field, value string) error {
	if value == "" {
		return newArgumentError(op, field+" must not be empty", "")
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return newArgumentError(op, field+" must be a single word", value)
	}
	return nil
}
