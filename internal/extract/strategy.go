package extract

// Strategy records which extraction produced a bootstrap fragment.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyMarkers
	StrategyStatementScan
)

func (s Strategy) String() string {
	switch s {
	case StrategyMarkers:
		return "markers"
	case StrategyStatementScan:
		return "statement-scan"
	default:
		return "none"
	}
}

// Bootstrap extracts the bootstrap-data fragment of an initialization
// script. It tries the section markers first and the statement scan second.
// When neither matches it returns NotFound with StrategyNone; it never fails.
func Bootstrap(text string, m Markers, needles []string) (Result, Strategy) {
	if r := Between(text, m); r.Found {
		return r, StrategyMarkers
	}
	if r := ScanStatements(text, needles); r.Found {
		return r, StrategyStatementScan
	}
	return NotFound(), StrategyNone
}
