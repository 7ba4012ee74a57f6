package domain

// Groups is a histogram of run lengths: index 0 counts runs of two, index 1
// runs of three and index 2 runs of Connect or more.
type Groups [Connect - 1]int

// Wins reports whether the histogram contains a completed run.
func (g Groups) Wins() bool {
	return g[Connect-2] > 0
}

type grid [Rows][Columns]PlayerID

// lineScan holds the result of one full pass over the scan lines.
type lineScan struct {
	groups  [Machine + 1]Groups
	witness []Coordinate
}

// run tracks the currently open run on one line.
type run struct {
	owner  PlayerID
	length int
	coords []Coordinate
}

func (r *run) reset(owner PlayerID, at Coordinate) {
	r.owner = owner
	r.coords = r.coords[:0]
	if owner == Empty {
		r.length = 0
		return
	}
	r.length = 1
	r.coords = append(r.coords, at)
}

// scanGrid recomputes both contestants' run histograms and the witness.
func scanGrid(g *grid) lineScan {
	var s lineScan
	r := run{coords: make([]Coordinate, 0, max(Rows, Columns))}

	for _, line := range scanLines {
		r.reset(Empty, line.Start)
		for at := line.Start; at.InBounds(); at = at.Add(line.Direction) {
			cell := g[at.Row][at.Col]
			if cell != Empty && cell == r.owner {
				r.length++
				r.coords = append(r.coords, at)
				continue
			}
			s.close(&r)
			r.reset(cell, at)
		}
		s.close(&r)
	}
	return s
}

// close records a finished run. A run of Connect or more replaces any
// previously found witness, so the last one closed wins.
func (s *lineScan) close(r *run) {
	if r.owner == Empty || r.length < 2 {
		return
	}
	s.groups[r.owner][min(Connect, r.length)-2]++
	if r.length >= Connect {
		s.witness = make([]Coordinate, Connect)
		copy(s.witness, r.coords[:Connect])
	}
}
