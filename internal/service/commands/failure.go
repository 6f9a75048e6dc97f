package commands

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates the verb is not a game command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// ErrAmbiguousKind indicates a misspelled name is equally close to several kinds.
var ErrAmbiguousKind = errors.New("ambiguous name")

// Failure is the presentation of a rejected command.
type Failure struct {
	Code    string
	Message string
	Status  int
}

type failureEntry struct {
	err     error
	code    string
	message string
	status  int
}

var failureTable = []failureEntry{
	{farm.ErrNoActionsLeft, "no_actions_left", "You have no actions left today. Type sleep to end the day.", http.StatusConflict},
	{farm.ErrInsufficientFunds, "insufficient_funds", "You cannot afford that.", http.StatusConflict},
	{farm.ErrNoSpaceAvailable, "no_space_available", "There is no room for that.", http.StatusConflict},
	{farm.ErrMaxLevelReached, "max_level_reached", "That building is already at its maximum level.", http.StatusConflict},
	{farm.ErrNoSuchProduct, "no_such_product", "You have none of that in storage.", http.StatusConflict},
	{farm.ErrInsufficientQuantity, "insufficient_quantity", "You do not have that much in storage.", http.StatusConflict},
	{farm.ErrWrongAction, "wrong_action", "That cannot be done.", http.StatusUnprocessableEntity},
	{farm.ErrWrongCreatureKind, "wrong_creature_kind", "That creature cannot live there.", http.StatusUnprocessableEntity},
	{farm.ErrWrongProductKind, "wrong_product_kind", "That is not what it needs.", http.StatusUnprocessableEntity},
	{farm.ErrInvalidQuantity, "invalid_quantity", "Amounts must be positive.", http.StatusUnprocessableEntity},
	{farm.ErrUnknownKind, "unknown_kind", "I do not know that name.", http.StatusUnprocessableEntity},
	{ErrAmbiguousKind, "ambiguous_kind", "Which one do you mean?", http.StatusUnprocessableEntity},
	{farm.ErrBuildingNotFound, "building_not_found", "There is no such building.", http.StatusUnprocessableEntity},
	{farm.ErrCreatureNotFound, "creature_not_found", "There is no such creature.", http.StatusUnprocessableEntity},
	{ErrInvalidArguments, "invalid_arguments", "I could not understand that.", http.StatusBadRequest},
	{ErrUnsupportedCommand, "unsupported_command", "Unknown command. Type help for the list.", http.StatusBadRequest},
}

// FailureText maps a command error to player-facing text and an HTTP status.
// Details wrapped around a known sentinel are appended in parentheses.
func FailureText(err error) Failure {
	for _, e := range failureTable {
		if !errors.Is(err, e.err) {
			continue
		}
		msg := e.message
		if detail := strings.TrimPrefix(err.Error(), e.err.Error()+": "); detail != err.Error() && detail != "" {
			msg += " (" + detail + ")"
		}
		return Failure{Code: e.code, Message: msg, Status: e.status}
	}
	return Failure{Code: "internal", Message: "Something went wrong.", Status: http.StatusInternalServerError}
}
