package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tier is a price band.
type Tier string

const (
	TierEconomy Tier = "economy"
	TierCentral Tier = "central"
	TierPremium Tier = "premium"
)

// Seat addresses a grid cell. Row 0 is labelled "A", column 0 is labelled "1".
type Seat struct {
	Row    int
	Column int
}

// Label renders the seat as row letter + 1-based column, e.g. "C7".
func (s Seat) Label() string {
	return string(rune('A'+s.Row)) + strconv.Itoa(s.Column+1)
}

// ParseSeatLabel parses labels like "C7" (case-insensitive).
func ParseSeatLabel(label string) (Seat, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return Seat{}, fmt.Errorf("%w: seat label %q", ErrInvalidInput, label)
	}

	letter := label[0]
	if letter < 'A' || letter > 'Z' {
		return Seat{}, fmt.Errorf("%w: seat label %q: bad row letter", ErrInvalidInput, label)
	}

	column, err := strconv.Atoi(label[1:])
	if err != nil || column < 1 {
		return Seat{}, fmt.Errorf("%w: seat label %q: bad column", ErrInvalidInput, label)
	}

	return Seat{Row: int(letter - 'A'), Column: column - 1}, nil
}

// tierBands returns the sizes of the first and last bands for a grid with the given row count.
// Ten rows split 3/4/3; other sizes keep the 30/40/30 proportion.
func tierBands(rows int) (first, last int) {
	band := (rows*3 + 5) / 10
	return band, band
}

// PriceTierForRow maps a row to its tier. Standard halls sell the first band as premium
// and the last as economy; reversed-tier halls invert this.
func PriceTierForRow(rowIndex, rows int, style HallStyle) Tier {
	first, last := tierBands(rows)

	var band int
	switch {
	case rowIndex < first:
		band = 0
	case rowIndex >= rows-last:
		band = 2
	default:
		band = 1
	}

	if band == 1 {
		return TierCentral
	}
	if style == HallStyleReversedTier {
		band = 2 - band
	}
	if band == 0 {
		return TierPremium
	}
	return TierEconomy
}

// SeatGrid is the occupancy matrix of a screening, indexed [row][column].
type SeatGrid [][]bool

// NewSeatGrid returns an empty rows x columns grid.
func NewSeatGrid(rows, columns int) SeatGrid {
	grid := make(SeatGrid, rows)
	for i := range grid {
		grid[i] = make([]bool, columns)
	}
	return grid
}

func (g SeatGrid) Rows() int {
	return len(g)
}

func (g SeatGrid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Contains reports whether the seat lies inside the grid.
func (g SeatGrid) Contains(s Seat) bool {
	return s.Row >= 0 && s.Row < g.Rows() && s.Column >= 0 && s.Column < len(g[s.Row])
}

// Occupancy is the number of occupied seats.
func (g SeatGrid) Occupancy() int {
	count := 0
	for _, row := range g {
		for _, taken := range row {
			if taken {
				count++
			}
		}
	}
	return count
}

// Capacity is the number of seats.
func (g SeatGrid) Capacity() int {
	return g.Rows() * g.Columns()
}

// IsAvailable reports whether the seat exists and is free.
func (g SeatGrid) IsAvailable(row, column int) bool {
	s := Seat{Row: row, Column: column}
	return g.Contains(s) && !g[row][column]
}

// Clone returns a deep copy.
func (g SeatGrid) Clone() SeatGrid {
	out := make(SeatGrid, len(g))
	for i, row := range g {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Occupy marks seats taken. It fails without changing the grid if any seat is outside
// the grid or already taken. Only the booking transaction may call it.
func (g SeatGrid) Occupy(seats []Seat) error {
	for _, s := range seats {
		if !g.Contains(s) {
			return fmt.Errorf("%w: seat %s is outside the hall", ErrInvalidInput, s.Label())
		}
		if g[s.Row][s.Column] {
			return &SeatUnavailableError{Label: s.Label()}
		}
	}
	for _, s := range seats {
		g[s.Row][s.Column] = true
	}
	return nil
}

// Validate checks that the grid is rectangular and non-empty.
func (g SeatGrid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: empty seat grid", ErrDataIntegrity)
	}
	columns := len(g[0])
	if columns == 0 {
		return fmt.Errorf("%w: seat grid has no columns", ErrDataIntegrity)
	}
	for i, row := range g {
		if len(row) != columns {
			return fmt.Errorf("%w: seat grid row %d has %d columns, want %d", ErrDataIntegrity, i, len(row), columns)
		}
	}
	return nil
}

// Value stores the grid as a JSON array of arrays.
func (g SeatGrid) Value() (driver.Value, error) {
	data, err := json.Marshal([][]bool(g))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan reads a JSON grid and rejects malformed data.
func (g *SeatGrid) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		return fmt.Errorf("%w: seat grid is NULL", ErrDataIntegrity)
	default:
		return fmt.Errorf("%w: unsupported seat grid type %T", ErrDataIntegrity, src)
	}

	var raw [][]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: decode seat grid: %v", ErrDataIntegrity, err)
	}
	grid := SeatGrid(raw)
	if err := grid.Validate(); err != nil {
		return err
	}
	*g = grid
	return nil
}
