package core

// RunStats accumulates counters across all files in one run.
// The processing core only increments; reporting is external.
type RunStats struct {
	FilesScanned  int
	FilesModified int
	FilesReverted int // Whole-file integrity check failed, edits discarded

	Found           int
	Deleted         int
	Kept            int
	ConvertedInfo   int
	ConvertedError  int
	CommentsRemoved int
	Skipped         int

	Warnings int

	SensitiveByRisk map[Risk]int
}

// NewRunStats creates an empty stats record
func NewRunStats() *RunStats {
	return &RunStats{
		SensitiveByRisk: make(map[Risk]int),
	}
}

// RecordOccurrence counts a found occurrence and its risk bucket
func (s *RunStats) RecordOccurrence(o *Occurrence) {
	s.Found++
	if o.Risk > RiskNone {
		s.SensitiveByRisk[o.Risk]++
	}
}

// RecordAction counts an applied decision
func (s *RunStats) RecordAction(a Action) {
	switch a {
	case ActionDelete:
		s.Deleted++
	case ActionKeep:
		s.Kept++
	case ActionConvertInfo:
		s.ConvertedInfo++
	case ActionConvertError:
		s.ConvertedError++
	case ActionRemoveComment:
		s.CommentsRemoved++
	case ActionSkip:
		s.Skipped++
	}
}

// Changed returns the total number of modifying actions applied
func (s *RunStats) Changed() int {
	return s.Deleted + s.ConvertedInfo + s.ConvertedError + s.CommentsRemoved
}

// Merge adds another stats record into this one
func (s *RunStats) Merge(other *RunStats) {
	if other == nil {
		return
	}
	s.FilesScanned += other.FilesScanned
	s.FilesModified += other.FilesModified
	s.FilesReverted += other.FilesReverted
	s.Found += other.Found
	s.Deleted += other.Deleted
	s.Kept += other.Kept
	s.ConvertedInfo += other.ConvertedInfo
	s.ConvertedError += other.ConvertedError
	s.CommentsRemoved += other.CommentsRemoved
	s.Skipped += other.Skipped
	s.Warnings += other.Warnings
	for risk, n := range other.SensitiveByRisk {
		s.SensitiveByRisk[risk] += n
	}
}
