package transform

import "fmt"

// warningList collects row-level anomalies surfaced at the end of a
// run. Anomalies never abort processing.
type warningList struct {
	msgs []string
}

func (w *warningList) addf(format string, args ...any) {
	w.msgs = append(w.msgs, fmt.Sprintf(format, args...))
}

func (w *warningList) all() []string {
	return w.msgs
}
