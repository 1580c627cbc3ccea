package pipeline

// RunStats counts the outcome of a batch. A file whose name conforms but
// whose information cannot be decoded counts as failed and as
// ExtractFailed.
type RunStats struct {
	Total         int
	Passed        int
	Failed        int
	ExtractFailed int
}

// OK reports whether no file failed.
func (s RunStats) OK() bool { return s.Failed == 0 }

// Add accumulates o into s.
func (s *RunStats) Add(o RunStats) {
	s.Total += o.Total
	s.Passed += o.Passed
	s.Failed += o.Failed
	s.ExtractFailed += o.ExtractFailed
}
