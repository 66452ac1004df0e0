package domain

// SeatView is one seat of a seat map.
type SeatView struct {
	Label     string `json:"label"`
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	Tier      Tier   `json:"tier"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}

// SeatMap is the read model of a screening's seats and prices.
type SeatMap struct {
	ScreeningID int64      `json:"screeningId"`
	Version     int64      `json:"version"`
	HallStyle   HallStyle  `json:"hallStyle"`
	Rows        int        `json:"rows"`
	Columns     int        `json:"columns"`
	Occupied    int        `json:"occupied"`
	Capacity    int        `json:"capacity"`
	Prices      Prices     `json:"prices"`
	Seats       []SeatView `json:"seats"`
}

// BuildSeatMap lists every seat of the screening with its tier, price and availability.
func BuildSeatMap(s *Screening, style HallStyle) *SeatMap {
	rows := s.Grid.Rows()
	seats := make([]SeatView, 0, s.Grid.Capacity())
	for r := 0; r < rows; r++ {
		tier := PriceTierForRow(r, rows, style)
		price := s.Prices.For(tier)
		for c := 0; c < len(s.Grid[r]); c++ {
			seat := Seat{Row: r, Column: c}
			seats = append(seats, SeatView{
				Label:     seat.Label(),
				Row:       r,
				Column:    c,
				Tier:      tier,
				Price:     price,
				Available: !s.Grid[r][c],
			})
		}
	}

	return &SeatMap{
		ScreeningID: s.ID,
		Version:     s.GridVersion,
		HallStyle:   style,
		Rows:        rows,
		Columns:     s.Grid.Columns(),
		Occupied:    s.Grid.Occupancy(),
		Capacity:    s.Grid.Capacity(),
		Prices:      s.Prices,
		Seats:       seats,
	}
}

// SeatPrice returns the tier and price of a seat at a screening.
func SeatPrice(s *Screening, style HallStyle, seat Seat) (Tier, int64) {
	tier := PriceTierForRow(seat.Row, s.Grid.Rows(), style)
	return tier, s.Prices.For(tier)
}
