package video

import (
	"strconv"
	"strings"
)

//lineKind is the kind of a line printed by the analyzer process
type lineKind int

const (
	lineLog      lineKind = iota //anything else, logged and skipped
	lineProgress                 //"PROGRESS <0..1>"
	lineError                    //"ERROR <message>"
)

const (
	progressPrefix = "PROGRESS "
	errorPrefix    = "ERROR "
)

//analyzerLine is one parsed line of the analyzer's standard output
type analyzerLine struct {
	kind     lineKind
	progress float64
	message  string
}

func parseAnalyzerLine(text string) analyzerLine {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, progressPrefix) {
		if p, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(text, progressPrefix)), 64); err == nil && p >= 0 && p <= 1 {
			return analyzerLine{kind: lineProgress, progress: p}
		}
		return analyzerLine{kind: lineLog, message: text}
	}

	if strings.HasPrefix(text, errorPrefix) {
		return analyzerLine{kind: lineError, message: strings.TrimSpace(strings.TrimPrefix(text, errorPrefix))}
	}

	return analyzerLine{kind: lineLog, message: text}
}

//AnalysisError is a failure reported by the analyzer itself, its message is shown to the user as is
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

//progress ranges of the pipeline's stages, reported to the job status
const (
	progressStarted    = 0.1
	progressProbed     = 0.2
	progressAnalyzeEnd = 0.8
	progressLoaded     = 0.85
	progressExportEnd  = 0.99
	progressCompleted  = 1.0
)

//scale maps p in [0,1] into [from,to]
func scale(p, from, to float64) float64 {
	return from + p*(to-from)
}
