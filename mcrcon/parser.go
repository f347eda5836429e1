package mcrcon

import (
	"strconv"
	"strings"
)

// CommandParser parses console input into prepared commands.
type CommandParser struct{}

// NewCommandParser creates a new command parser.
func NewCommandParser() *CommandParser {
	return &CommandParser{}
}

// Parse parses a command line into a Runnable. Lines naming a catalog
// command are validated and prepared; any other line becomes a RawCommand.
// The line may optionally begin with a slash.
func (p *CommandParser) Parse(line string) (Runnable, error) {
	commandLine := strings.TrimSpace(line)
	commandLine = strings.TrimPrefix(commandLine, "/")

	if len(commandLine) > MaxCommandLength {
		return nil, newArgumentError("", "command exceeds maximum length", "")
	}

	// Split into command and arguments
	command, argsString, _ := strings.Cut(commandLine, " ")
	if command == "" {
		return nil, newArgumentError("", "empty command", "")
	}
	argsString = strings.TrimSpace(argsString)
	fields := strings.Fields(argsString)

	switch strings.ToLower(command) {
	case "list":
		return p.parseList(fields)
	case "gamerule":
		return p.parseGameRule(fields)
	case "give":
		return p.parseGive(fields)
	case "kill":
		return p.parseKill(fields)
	case "say":
		return SayCommand.runnable(SayArgs{Message: argsString})
	case "time":
		return p.parseTime(fields)
	case "save-all":
		return p.parseSave(fields)
	case "stop":
		if len(fields) != 0 {
			return nil, newArgumentError("stop", "takes no arguments", argsString)
		}
		return StopCommand.runnable(struct{}{})
	case "seed":
		if len(fields) != 0 {
			return nil, newArgumentError("seed", "takes no arguments", argsString)
		}
		return SeedCommand.runnable(struct{}{})
	case "advancement":
		return p.parseAdvancement(fields)
	default:
		return RawCommand{Line: commandLine}, nil
	}
}

func (p *CommandParser) parseList(fields []string) (Runnable, error) {
	switch {
	case len(fields) == 0:
		return ListCommand.runnable(ListArgs{})
	case len(fields) == 1 && strings.EqualFold(fields[0], "uuids"):
		return ListCommand.runnable(ListArgs{UUIDs: true})
	default:
		return nil, newArgumentError("list", "expected 'list' or 'list uuids'", strings.Join(fields, " "))
	}
}

func (p *CommandParser) parseGameRule(fields []string) (Runnable, error) {
	switch len(fields) {
	case 1:
		return GameRuleCommand.runnable(GameRuleArgs{Rule: fields[0]})
	case 2:
		value, err := parseRuleValue(fields[1])
		if err != nil {
			return nil, err
		}
		// Numeric rules missing from the table (newer servers) go through
		// unchecked; the server rejects a number for a boolean rule.
		if !value.IsBool() && !IsNumericGameRule(fields[0]) {
			return RawCommand{Line: "gamerule " + fields[0] + " " + fields[1]}, nil
		}
		return GameRuleCommand.runnable(GameRuleArgs{Rule: fields[0], Value: &value})
	default:
		return nil, newArgumentError("gamerule", "usage: gamerule <rule> [value]", strings.Join(fields, " "))
	}
}

// parseRuleValue parses "true"/"false" as a boolean and anything numeric as a number.
func parseRuleValue(s string) (RuleValue, error) {
	if b, err := strconv.ParseBool(strings.ToLower(s)); err == nil && boolPattern.MatchString(s) {
		return BoolValue(b), nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return RuleValue{}, newArgumentError("gamerule", "value must be a boolean or a number", s)
	}
	return NumberValue(n), nil
}

func (p *CommandParser) parseGive(fields []string) (Runnable, error) {
	if len(fields) < 2 || len(fields) > 3 {
		return nil, newArgumentError("give", "usage: give <target> <item> [count]", strings.Join(fields, " "))
	}
	args := GiveArgs{Target: fields[0], Item: fields[1]}
	if len(fields) == 3 {
		count, err := strconv.Atoi(fields[2])
		if err != nil || count <= 0 {
			return nil, newArgumentError("give", "invalid count", fields[2])
		}
		args.Count = count
	}
	return GiveCommand.runnable(args)
}

func (p *CommandParser) parseKill(fields []string) (Runnable, error) {
	if len(fields) != 1 {
		return nil, newArgumentError("kill", "usage: kill <target>", strings.Join(fields, " "))
	}
	return KillCommand.runnable(KillArgs{Target: fields[0]})
}

func (p *CommandParser) parseTime(fields []string) (Runnable, error) {
	if len(fields) != 2 {
		return nil, newArgumentError("time", "usage: time <query|set|add> <value>", strings.Join(fields, " "))
	}
	return TimeCommand.runnable(TimeArgs{Action: TimeAction(strings.ToLower(fields[0])), Target: fields[1]})
}

func (p *CommandParser) parseSave(fields []string) (Runnable, error) {
	switch {
	case len(fields) == 0:
		return SaveCommand.runnable(SaveArgs{})
	case len(fields) == 1 && strings.EqualFold(fields[0], "flush"):
		return SaveCommand.runnable(SaveArgs{Flush: true})
	default:
		return nil, newArgumentError("save-all", "expected 'save-all' or 'save-all flush'", strings.Join(fields, " "))
	}
}

func (p *CommandParser) parseAdvancement(fields []string) (Runnable, error) {
	if len(fields) < 3 || len(fields) > 4 {
		return nil, newArgumentError("advancement",
			"usage: advancement <grant|revoke> <target> <scope> [advancement[/criterion]]", strings.Join(fields, " "))
	}
	args := AdvancementArgs{
		Action: AdvancementAction(strings.ToLower(fields[0])),
		Target: fields[1],
		Scope:  AdvancementScope(strings.ToLower(fields[2])),
	}
	if len(fields) == 4 {
		// A criterion, if any, stays joined to the id with its slash.
		args.Advancement = fields[3]
	}
	return AdvancementCommand.runnable(args)
}
