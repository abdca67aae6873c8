package game

// Seat identifies one of the two players of a game independently of the
// role the player currently holds.
type Seat uint8

const (
	SeatOne Seat = iota
	SeatTwo
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == SeatOne {
		return SeatTwo
	}
	return SeatOne
}

func (s Seat) String() string {
	switch s {
	case SeatOne:
		return "player1"
	case SeatTwo:
		return "player2"
	default:
		return "unknown"
	}
}
