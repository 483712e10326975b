package commands

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/stock"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// HelpText lists the supported chat commands.
const HelpText = "Commands:\n" +
	"low - items at or below their minimum\n" +
	"item <id> - warehouse stock of one item\n" +
	"vehicle <id> - allocation and last count of a vehicle\n" +
	"help - this message"

// ReportingAdapter defines the summaries required by the dispatcher.
type ReportingAdapter interface {
	LowStockSummary(ctx context.Context) (string, error)
	ItemSummary(ctx context.Context, id string) (string, error)
	VehicleSummary(ctx context.Context, id string) (string, error)
}

// Dispatcher answers parsed chat commands.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	reporting ReportingAdapter
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(reporting ReportingAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reporting: reporting, logger: logger}
}

// HandleCommand returns the reply text for cmd. Unknown ids produce a reply
// rather than an error so the sender learns what went wrong.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandLowStock:
		return s.reporting.LowStockSummary(ctx)
	case models.CommandItem:
		id, err := singleArg(cmd)
		if err != nil {
			return "", err
		}
		reply, err := s.reporting.ItemSummary(ctx, id)
		return unknownAsReply("item", id, reply, err)
	case models.CommandVehicle:
		id, err := singleArg(cmd)
		if err != nil {
			return "", err
		}
		reply, err := s.reporting.VehicleSummary(ctx, id)
		return unknownAsReply("vehicle", id, reply, err)
	case models.CommandHelp:
		return HelpText, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func singleArg(cmd models.Command) (string, error) {
	if len(cmd.Args) != 1 {
		return "", ErrInvalidArguments
	}
	return strings.ToUpper(cmd.Args[0]), nil
}

func unknownAsReply(kind, id, reply string, err error) (string, error) {
	if errors.Is(err, stock.ErrNotFound) {
		return "Unknown " + kind + " " + id + ".", nil
	}
	return reply, err
}
