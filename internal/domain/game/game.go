package game

import (
	"time"
)

type Game struct {
	SecretKey   string     `json:"-" bson:"_id"` // выдаётся только создателю
	PublicKey   string     `json:"public_key" bson:"public_key"`
	BoardSize   int        `json:"board_size" bson:"board_size"`
	Status      string     `json:"status" bson:"status"`
	PlayerBlack string     `json:"player_black,omitempty" bson:"player_black,omitempty"`
	PlayerWhite string     `json:"player_white,omitempty" bson:"player_white,omitempty"`
	Winner      string     `json:"winner,omitempty" bson:"winner,omitempty"`
	MoveCount   int        `json:"move_count" bson:"move_count"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`

	// FinalState хранит бинарный снимок доски завершённой партии.
	FinalState []byte `json:"-" bson:"final_state,omitempty"`
}

type GameCreateRequest struct {
	BoardSize int    `json:"board_size"`
	Color     string `json:"color,omitempty"` // black, white или random
}

type GameCreateResponse struct {
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key"`
}

type GameJoinRequest struct {
	PublicKey string `json:"public_key"`
}

type GameJoinResponse struct {
	PublicKey string `json:"public_key"`
	Color     string `json:"color"`
}

type GameLeaveRequest struct {
	PublicKey string `json:"public_key"`
}

type GameStateResponse struct {
	PublicKey   string      `json:"public_key"`
	Status      string      `json:"status"`
	Size        int         `json:"size"`
	Turn        string      `json:"turn"`
	Grid        [][]int     `json:"grid"`
	Moves       []MovePoint `json:"moves"`
	Captures    Captures    `json:"captures"`
	Territory   Territory   `json:"territory"`
	PlayerBlack string      `json:"player_black,omitempty"`
	PlayerWhite string      `json:"player_white,omitempty"`
	Winner      string      `json:"winner,omitempty"`
}

type Captures struct {
	Black uint32 `json:"black"`
	White uint32 `json:"white"`
}

type Territory struct {
	Neutral uint32 `json:"neutral"`
	Black   uint32 `json:"black"`
	White   uint32 `json:"white"`
}
