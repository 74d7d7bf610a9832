package logging

// defaultProgressStep is the percent distance between two sampled copy
// progress lines for the same file.
const defaultProgressStep = 10

// ProgressSampler thins per-chunk copy progress to one debug line every step
// percent for each file. Switching to another file starts over.
type ProgressSampler struct {
	step int
	file string
	next int
}

// NewProgressSampler returns a sampler logging every step percent. A step
// outside 1..100 falls back to 10.
func NewProgressSampler(step int) *ProgressSampler {
	if step <= 0 || step > 100 {
		step = defaultProgressStep
	}
	return &ProgressSampler{step: step}
}

// ShouldLog reports whether progress for file at percent deserves a log line.
// The first report for a file always logs; later ones log once the next step
// is reached. A nil sampler logs everything.
func (s *ProgressSampler) ShouldLog(file string, percent int) bool {
	if s == nil {
		return true
	}
	if file != s.file {
		s.file = file
		s.next = 0
	}
	if percent < s.next {
		return false
	}
	s.next = min(percent/s.step*s.step+s.step, 101)
	return true
}

// Reset forgets the current file so the next report logs.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.file = ""
	s.next = 0
}
