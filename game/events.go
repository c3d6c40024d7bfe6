package game

import "encoding/json"

// Inbound event names.
const (
	EventJoin           = "join"
	EventJoinPrivate    = "joinPrivate"
	EventCreatePrivate  = "createPrivate"
	EventChooseWord     = "chooseWord"
	EventSubmitGuess    = "submitGuess"
	EventStrokeSegment  = "strokeSegment"
	EventStrokeComplete = "strokeComplete"
	EventClearCanvas    = "clearCanvas"
	EventUndoLastStroke = "undoLastStroke"
	EventLeaveRoom      = "leaveRoom"
)

// Outbound event names not shared with inbound ones.
const (
	EventRoomJoined      = "roomJoined"
	EventPlayerList      = "playerList"
	EventRoomStatus      = "roomStatus"
	EventRoundStarted    = "roundStarted"
	EventWordChoices     = "wordChoices"
	EventSecretWord      = "secretWord"
	EventRoundInProgress = "roundInProgress"
	EventCorrectGuess    = "correctGuess"
	EventRoundEnded      = "roundEnded"
	EventGameFinished    = "gameFinished"
	EventCanvasLoad      = "canvasLoad"
	EventChatMessage     = "chatMessage"
	EventSystem          = "system"
	EventRoomClosed      = "roomClosed"
	EventError           = "error"
)

const (
	SystemDrawerLeft             = "drawerLeft"
	SystemDrawerLeftDuringChoose = "drawerLeftDuringChoose"
)

// Envelope is one inbound frame tagged with the connection it came from.
type Envelope struct {
	ConnId    string
	Event     string
	Data      json.RawMessage
	Malformed bool
}

type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type joinPayload struct {
	Name string `json:"name"`
}

type joinPrivatePayload struct {
	Name     string `json:"name"`
	RoomCode string `json:"roomCode"`
}

type roomPayload struct {
	RoomId string `json:"roomId"`
}

type chooseWordPayload struct {
	RoomId string `json:"roomId"`
	Word   string `json:"word"`
}

type guessPayload struct {
	RoomId string `json:"roomId"`
	Guess  string `json:"guess"`
}

// Coordinates are pointers so a missing one is told apart from zero.
type strokeSegmentPayload struct {
	RoomId string   `json:"roomId"`
	X0     *float64 `json:"x0"`
	Y0     *float64 `json:"y0"`
	X1     *float64 `json:"x1"`
	Y1     *float64 `json:"y1"`
	Color  string   `json:"color"`
	Size   float64  `json:"size"`
}

func (p strokeSegmentPayload) complete() bool {
	return p.X0 != nil && p.Y0 != nil && p.X1 != nil && p.Y1 != nil
}

type strokeCompletePayload struct {
	RoomId string  `json:"roomId"`
	Stroke *Stroke `json:"stroke"`
}

type PlayerView struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Score     int    `json:"score"`
	Guessed   bool   `json:"guessed"`
	Connected bool   `json:"connected"`
}

type ScoreEntry struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type RoomSnapshot struct {
	RoomId       string       `json:"roomId"`
	AccessCode   string       `json:"roomCode,omitempty"`
	Private      bool         `json:"isPrivate"`
	Status       Phase        `json:"status"`
	Round        int          `json:"round"`
	MaxRounds    int          `json:"maxRounds"`
	HostId       string       `json:"hostId"`
	DrawerId     string       `json:"drawerId"`
	YouAreDrawer bool         `json:"youAreDrawer"`
	YourId       string       `json:"yourId"`
	Players      []PlayerView `json:"players"`
	PlayerCount  int          `json:"playerCount"`
}

type playerListData struct {
	Players []PlayerView `json:"players"`
}

type roomStatusData struct {
	Status Phase `json:"status"`
	Round  int   `json:"round"`
}

type roundStartedData struct {
	Round        int    `json:"round"`
	MaxRounds    int    `json:"maxRounds"`
	DrawerId     string `json:"drawerId"`
	ChoosingWord bool   `json:"choosingWord"`
}

type wordChoicesData struct {
	Words []string `json:"words"`
}

type secretWordData struct {
	Word string `json:"word"`
}

type roundInProgressData struct {
	Round       int    `json:"round"`
	DrawerId    string `json:"drawerId"`
	RoundTimeMs int64  `json:"roundTimeMs"`
	StartTimeMs int64  `json:"startTimeMs"`
}

type correctGuessData struct {
	PlayerId   string       `json:"playerId"`
	PlayerName string       `json:"playerName"`
	Scores     []ScoreEntry `json:"scores"`
	FastBonus  bool         `json:"fastBonus"`
}

type roundEndedData struct {
	Round  int          `json:"round"`
	Word   string       `json:"word"`
	Scores []ScoreEntry `json:"scores"`
}

type gameFinishedData struct {
	Scores []ScoreEntry `json:"scores"`
}

type strokesData struct {
	Strokes []Stroke `json:"strokes"`
}

type strokeSegmentData struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`
}

type strokeCompleteData struct {
	Stroke Stroke `json:"stroke"`
}

type chatMessageData struct {
	PlayerId string `json:"playerId"`
	Name     string `json:"name"`
	Text     string `json:"text"`
}

type systemData struct {
	Type string `json:"type"`
}

type roomClosedData struct {
	RoomId string `json:"roomId"`
}

type errorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
