package feeledger

import "fmt"

// ValidationError reports malformed or out-of-range input. The ledger is
// left unchanged when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an installment index that does not exist.
type NotFoundError struct {
	Index int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("installment %d does not exist", e.Index)
}

// ConsistencyViolation reports a mutation that would break a ledger
// invariant. The operation is rejected, never clamped.
type ConsistencyViolation struct {
	Reason string
}

func (e *ConsistencyViolation) Error() string {
	return fmt.Sprintf("ledger consistency violation: %s", e.Reason)
}
