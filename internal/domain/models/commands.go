package models

import "strings"

// CommandType enumerates the stock queries accepted over chat.
type CommandType string

const (
	CommandLowStock CommandType = "low"
	CommandItem     CommandType = "item"
	CommandVehicle  CommandType = "vehicle"
	CommandHelp     CommandType = "help"
	CommandUnknown  CommandType = "unknown"
)

// Command represents a parsed query extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form text. The command word is
// case-insensitive and may carry a leading slash; arguments keep their case.
func ParseCommand(message string) Command {
	tokens := strings.Fields(message)
	cmd := Command{Raw: message}

	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch head {
	case string(CommandLowStock), "lowstock", "low-stock":
		cmd.Type = CommandLowStock
	case string(CommandItem):
		cmd.Type = CommandItem
	case string(CommandVehicle), "car", "truck":
		cmd.Type = CommandVehicle
	case string(CommandHelp), "?":
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
