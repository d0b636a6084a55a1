package game

// @name MoveRequest
type MoveRequest struct {
	PublicKey string `json:"public_key"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// @name MovePoint
type MovePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameEvent уходит наблюдателям по вебсокету после каждого события партии.
// @name GameEvent
type GameEvent struct {
	Event string             `json:"event"` // move, join или finish
	Move  *MovePoint         `json:"move,omitempty"`
	State *GameStateResponse `json:"state"`
}
