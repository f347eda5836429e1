package mcrcon

import (
	"strconv"

	"github.com/google/uuid"
)

// Target selectors accepted wherever a player or entity target is expected.
const (
	SelectorNearestPlayer = "@p"
	SelectorRandomPlayer  = "@r"
	SelectorAllPlayers    = "@a"
	SelectorAllEntities   = "@e"
	SelectorSelf          = "@s"
)

// PlayerEntry is one player reported by the list command.
type PlayerEntry struct {
	Name string
	UUID string // Empty unless uuids were requested
}

// ParseUUID parses the entry's UUID.
func (p PlayerEntry) ParseUUID() (uuid.UUID, error) {
	return uuid.Parse(p.UUID)
}

// TimeAction is the sub-command of the time command.
type TimeAction string

const (
	TimeQuery TimeAction = "query"
	TimeSet   TimeAction = "set"
	TimeAdd   TimeAction = "add"
)

// TimeQueryTarget names the clock read by a time query.
type TimeQueryTarget string

const (
	TimeDaytime  TimeQueryTarget = "daytime"
	TimeGametime TimeQueryTarget = "gametime"
	TimeDay      TimeQueryTarget = "day"
)

// AdvancementAction is grant or revoke.
type AdvancementAction string

const (
	AdvancementGrant  AdvancementAction = "grant"
	AdvancementRevoke AdvancementAction = "revoke"
)

// AdvancementScope selects which advancements an advancement command touches.
type AdvancementScope string

const (
	// ScopeEverything adds or removes all loaded advancements.
	ScopeEverything AdvancementScope = "everything"
	// ScopeOnly adds or removes a single advancement or criterion.
	ScopeOnly AdvancementScope = "only"
	// ScopeFrom adds or removes an advancement and all its children.
	ScopeFrom AdvancementScope = "from"
	// ScopeThrough adds or removes an advancement with its parents and children.
	ScopeThrough AdvancementScope = "through"
	// ScopeUntil adds or removes an advancement and its parents up to the root.
	ScopeUntil AdvancementScope = "until"
)

// numericGameRules take integer values; every other rule is boolean.
var numericGameRules = map[string]bool{
	"maxEntityCramming":             true,
	"randomTickSpeed":               true,
	"spawnRadius":                   true,
	"playersSleepingPercentage":     true,
	"maxCommandChainLength":         true,
	"maxCommandForkCount":           true,
	"snowAccumulationHeight":        true,
	"commandModificationBlockLimit": true,
}

// IsNumericGameRule reports whether rule takes an integer value.
func IsNumericGameRule(rule string) bool {
	return numericGameRules[rule]
}

// RuleValue is a game rule value: either a boolean or a number.
type RuleValue struct {
	isBool bool
	b      bool
	n      float64
}

// BoolValue creates a boolean rule value.
func BoolValue(b bool) RuleValue {
	return RuleValue{isBool: true, b: b}
}

// NumberValue creates a numeric rule value.
func NumberValue(n float64) RuleValue {
	return RuleValue{n: n}
}

// IsBool reports whether v holds a boolean.
func (v RuleValue) IsBool() bool { return v.isBool }

// Bool returns the boolean value (false for numbers).
func (v RuleValue) Bool() bool { return v.b }

// Number returns the numeric value (0 for booleans).
func (v RuleValue) Number() float64 { return v.n }

// String formats v the way the server prints it.
func (v RuleValue) String() string {
	if v.isBool {
		return strconv.FormatBool(v.b)
	}
	return strconv.FormatFloat(v.n, 'f', -1, 64)
}
