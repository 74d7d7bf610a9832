package organizer

import "math"

// runProgress accumulates copied bytes across every file of one run.
type runProgress struct {
	copied int64
	total  int64
}

// add attributes n more bytes and returns the overall percentage. The counter
// is capped at total so a file that grew after classification cannot push the
// run past 100%.
func (p *runProgress) add(n int64) int {
	p.copied += n
	if p.copied > p.total {
		p.copied = p.total
	}
	return p.percent()
}

func (p *runProgress) percent() int {
	if p.total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.copied) / float64(p.total) * 100))
}
