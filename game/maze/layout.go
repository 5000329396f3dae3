package maze

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrUnknownLayout = errors.New("unknown layout")

// Layout is the static part of a game: walls and starting positions. It is
// shared, never modified, by every state of a game.
type Layout struct {
	Name     string
	Width    int
	Height   int
	walls    []bool // Indexed by y*Width + x
	Food     []Position
	Capsules []Position
	Runner   Position
	Ghosts   []Position
}

// ParseLayout reads a layout drawn with '%' walls, '.' food, 'o' capsules,
// 'P' the runner, 'G' ghosts and spaces for empty floor.
func ParseLayout(name, text string) (*Layout, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, errors.Errorf("layout %s is empty", name)
	}

	l := &Layout{
		Name:   name,
		Width:  len(lines[0]),
		Height: len(lines),
	}
	l.walls = make([]bool, l.Width*l.Height)
	runners := 0
	for y, line := range lines {
		if len(line) != l.Width {
			return nil, errors.Errorf("layout %s: row %d has width %d, expected %d", name, y, len(line), l.Width)
		}
		for x, c := range line {
			p := Position{x, y}
			switch c {
			case '%':
				l.walls[y*l.Width+x] = true
			case '.':
				l.Food = append(l.Food, p)
			case 'o':
				l.Capsules = append(l.Capsules, p)
			case 'P':
				l.Runner = p
				runners++
			case 'G':
				l.Ghosts = append(l.Ghosts, p)
			case ' ':
			default:
				return nil, errors.Errorf("layout %s: unexpected %q at row %d column %d", name, c, y, x)
			}
		}
	}
	if runners != 1 {
		return nil, errors.Errorf("layout %s: expected exactly one runner, found %d", name, runners)
	}
	if len(l.Food) == 0 {
		return nil, errors.Errorf("layout %s has no food", name)
	}
	return l, nil
}

// IsWall reports whether p is a wall; cells outside the grid count as walls.
func (l *Layout) IsWall(p Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		return true
	}
	return l.walls[p.Y*l.Width+p.X]
}

func (l *Layout) index(p Position) int {
	return p.Y*l.Width + p.X
}

// NumAgents counts the runner and the ghosts.
func (l *Layout) NumAgents() int {
	return 1 + len(l.Ghosts)
}

var layouts = map[string]string{
	"minimax": `
%%%%%%%%%
%.P    G%
% %.%G%%%
%G    %%%
%%%%%%%%%`,
	"trapped": `
%%%%%%%%
%   P G%
%G%%%%%%
%....  %
%%%%%%%%`,
	"small": `
%%%%%%%%%%%%%%%%%%%%
%......%G  G%......%
%.%%...%%  %%...%%.%
%.%o.%........%.o%.%
%.%%.%.%%%%%%.%.%%.%
%........P.........%
%%%%%%%%%%%%%%%%%%%%`,
	"open": `
%%%%%%%%%%%%
%P.......o.%
%..........%
%....%%....%
%..........%
%.o.......G%
%%%%%%%%%%%%`,
	"solo": `
%%%%%%%
%P  . %
% %%% %
%.   .%
%%%%%%%`,
}

// LoadLayout returns one of the built-in layouts by name.
func LoadLayout(name string) (*Layout, error) {
	text, ok := layouts[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownLayout, "%q", name)
	}
	return ParseLayout(name, text)
}

// LayoutNames lists the built-in layouts in alphabetical order.
func LayoutNames() []string {
	names := lo.Keys(layouts)
	slices.Sort(names)
	return names
}
