package game

// Point identifies one of the 24 board intersections.
//
//	0-----------1-----------2
//	|   3-------4-------5   |
//	|   |   6---7---8   |   |
//	9---10--11      12--13--14
//	|   |   15--16--17  |   |
//	|   18------19------20  |
//	21----------22----------23
type Point int8

// NoPoint is the "none" end of a move.
const NoPoint Point = -1

const NumPoints = 24

// Mill is a line of three points.
type Mill [3]Point

// Valid reports whether p is a board point.
func (p Point) Valid() bool {
	return p >= 0 && p < NumPoints
}

// Board is the static graph of points, edges and mill lines.
type Board struct {
	adjacency       [NumPoints][]Point
	mills           []Mill
	millsContaining [NumPoints][]Mill
}

// board is built once at package initialisation and never mutated afterwards.
var board = createBoard()

// AddEdge adds a bidirectional edge between two points.
func (b *Board) AddEdge(p1, p2 Point) {
	if !containsPoint(b.adjacency[p1], p2) {
		b.adjacency[p1] = append(b.adjacency[p1], p2)
	}
	if !containsPoint(b.adjacency[p2], p1) {
		b.adjacency[p2] = append(b.adjacency[p2], p1)
	}
}

// AddMill registers a mill line and indexes it by each of its points.
func (b *Board) AddMill(m Mill) {
	b.mills = append(b.mills, m)
	for _, p := range m {
		b.millsContaining[p] = append(b.millsContaining[p], m)
	}
}

func containsPoint(slice []Point, item Point) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

func createBoard() *Board {
	b := &Board{}
	for _, e := range edgeData {
		b.AddEdge(e[0], e[1])
	}
	for _, m := range millData {
		b.AddMill(m)
	}
	return b
}

// Adjacency returns the points connected to p by a board edge.
func Adjacency(p Point) []Point {
	return board.adjacency[p]
}

// AreAdjacent checks if two points share an edge.
func AreAdjacent(p1, p2 Point) bool {
	return containsPoint(board.adjacency[p1], p2)
}

// Mills returns all 16 mill lines.
func Mills() []Mill {
	return board.mills
}

// MillsContaining returns the mill lines that include p.
func MillsContaining(p Point) []Mill {
	return board.millsContaining[p]
}

var edgeData = [][2]Point{
	// outer square
	{0, 1}, {1, 2}, {2, 14}, {14, 23}, {23, 22}, {22, 21}, {21, 9}, {9, 0},
	// middle square
	{3, 4}, {4, 5}, {5, 13}, {13, 20}, {20, 19}, {19, 18}, {18, 10}, {10, 3},
	// inner square
	{6, 7}, {7, 8}, {8, 12}, {12, 17}, {17, 16}, {16, 15}, {15, 11}, {11, 6},
	// spokes
	{1, 4}, {4, 7}, {9, 10}, {10, 11}, {12, 13}, {13, 14}, {16, 19}, {19, 22},
}

var millData = []Mill{
	// horizontal
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, {9, 10, 11},
	{12, 13, 14}, {15, 16, 17}, {18, 19, 20}, {21, 22, 23},
	// vertical
	{0, 9, 21}, {3, 10, 18}, {6, 11, 15}, {1, 4, 7},
	{16, 19, 22}, {8, 12, 17}, {5, 13, 20}, {2, 14, 23},
}
