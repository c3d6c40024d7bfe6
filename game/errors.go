package game

import "errors"

var (
	ErrRoomNotFound        = errors.New("room-not-found")
	ErrRoomFull            = errors.New("room-full")
	ErrGameFinished        = errors.New("game-finished")
	ErrAlreadyInRoom       = errors.New("already-in-room")
	ErrNotInRoom           = errors.New("not-in-room")
	ErrInvalidName         = errors.New("invalid-name")
	ErrAccessCodeExhausted = errors.New("access-code-exhausted")
)

var (
	ErrWrongPhase        = errors.New("wrong-phase")
	ErrNotDrawer         = errors.New("only-drawer-can-choose")
	ErrInvalidWordChoice = errors.New("invalid-word-choice")
)

var (
	ErrMalformedEvent = errors.New("malformed-event")
	ErrUnknownEvent   = errors.New("unknown-event")
	ErrSendBufferFull = errors.New("send-buffer-full")
	ErrEngineStopped  = errors.New("engine-stopped")
)

var ErrVocabularyTooSmall = errors.New("vocabulary-too-small")

// errorMessages are the human readable texts shown next to the error code.
var errorMessages = map[error]string{
	ErrRoomNotFound:        "Room not found.",
	ErrRoomFull:            "Room is full.",
	ErrGameFinished:        "This game has already finished.",
	ErrAlreadyInRoom:       "You are already in a room.",
	ErrNotInRoom:           "You are not in that room.",
	ErrInvalidName:         "Invalid name.",
	ErrAccessCodeExhausted: "Could not allocate a room code, try again.",
	ErrWrongPhase:          "That action is not allowed right now.",
	ErrNotDrawer:           "Only the drawer can choose the word.",
	ErrInvalidWordChoice:   "Invalid word choice.",
	ErrMalformedEvent:      "Malformed event.",
	ErrUnknownEvent:        "Unknown event.",
}
