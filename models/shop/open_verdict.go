package shop

import "fmt"

const (
	ReasonOK          = "OK"
	ReasonModelClosed = "model judgment: closed"
)

// OpenVerdict is the outcome of an open/closed check for one shop at one target time.
type OpenVerdict struct {
	Open   bool
	Reason string
}

// RegularClosureReason cites the raw closure text that matched the target weekday.
func RegularClosureReason(closeText string) string {
	return fmt.Sprintf("regular closure day: %s", closeText)
}
