package entity

type Seat string

const (
	SeatNone Seat = ""
	SeatA    Seat = "playerA"
	SeatB    Seat = "playerB"
)

func (that Seat) Other() Seat {
	switch that {
	case SeatA:
		return SeatB
	case SeatB:
		return SeatA
	default:
		return SeatNone
	}
}

// Letter is the seat's mark in the engine board notation.
func (that Seat) Letter() byte {
	switch that {
	case SeatA:
		return 'B'
	case SeatB:
		return 'R'
	default:
		return '.'
	}
}

const (
	RoleHuman  = "human"
	RoleEngine = "engine"

	BotUserID = "bot"
)

type Player struct {
	Seat   Seat   `json:"seat" bson:"seat"`
	UserID string `json:"userId" bson:"user_id"`
	Role   string `json:"role" bson:"role"`
	Score  int    `json:"score" bson:"score"`
}

func (that *Player) IsEngine() bool {
	return that.Role == RoleEngine
}
