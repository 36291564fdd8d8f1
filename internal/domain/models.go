package domain

// Span is a half-open byte range [Start, End) within a matched line.
type Span struct {
	Start int
	End   int
}

// Match represents one line in one file that satisfied the search pattern
type Match struct {
	FilePath   string
	LineNumber int // 1-based
	LineText   string
	Spans      []Span // non-overlapping, ascending by Start
}
