package models

import "strings"

// CommandType enumerates the verbs a player can type.
type CommandType string

const (
	CommandStatus  CommandType = "status"
	CommandFeed    CommandType = "feed"
	CommandWater   CommandType = "water"
	CommandCollect CommandType = "collect"
	CommandHarvest CommandType = "harvest"
	CommandBuy     CommandType = "buy"
	CommandSell    CommandType = "sell"
	CommandBuild   CommandType = "build"
	CommandUpgrade CommandType = "upgrade"
	CommandSleep   CommandType = "sleep"
	CommandHelp    CommandType = "help"
	CommandForget  CommandType = "forget"
	CommandUnknown CommandType = "unknown"
)

var commandWords = map[string]CommandType{
	"status":  CommandStatus,
	"farm":    CommandStatus,
	"feed":    CommandFeed,
	"water":   CommandWater,
	"pour":    CommandWater,
	"collect": CommandCollect,
	"gather":  CommandCollect,
	"harvest": CommandHarvest,
	"buy":     CommandBuy,
	"sell":    CommandSell,
	"build":   CommandBuild,
	"upgrade": CommandUpgrade,
	"sleep":   CommandSleep,
	"end":     CommandSleep,
	"night":   CommandSleep,
	"help":    CommandHelp,
	"?":       CommandHelp,
	"forget":  CommandForget,
	"stop":    CommandForget,
}

// Command represents a parsed player instruction.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// Metered reports whether running the command spends one of the day's actions.
func (t CommandType) Metered() bool {
	switch t {
	case CommandFeed, CommandWater, CommandCollect, CommandHarvest,
		CommandBuy, CommandSell, CommandBuild, CommandUpgrade:
		return true
	default:
		return false
	}
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(strings.ToLower(message))
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.TrimPrefix(tokens[0], "/")
	if t, ok := commandWords[head]; ok {
		cmd.Type = t
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
