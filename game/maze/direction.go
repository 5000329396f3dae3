package maze

// Direction is the action type of every agent in the maze.
type Direction int

const (
	Stop Direction = iota
	North
	South
	East
	West
)

// Enumeration order of moves; Stop, where legal, comes last.
var directions = []Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "Stop"
	}
}

func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return Stop
	}
}

// Position is a cell of the grid; Y grows downwards, row 0 is the top line of the layout.
type Position struct {
	X, Y int
}

func (p Position) Move(d Direction) Position {
	switch d {
	case North:
		return Position{p.X, p.Y - 1}
	case South:
		return Position{p.X, p.Y + 1}
	case East:
		return Position{p.X + 1, p.Y}
	case West:
		return Position{p.X - 1, p.Y}
	default:
		return p
	}
}

// Distance is the manhattan distance between p and q.
func (p Position) Distance(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
