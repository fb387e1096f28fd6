package common

import (
	"errors"
	"fmt"
)

type PlanErrorCode int

const (
	// MalformedPlanError indicates the plan handed over by the upstream planner is missing
	// a node that every plan must have (the Packet root) or a node has no parent slot to
	// splice into.
	MalformedPlanError PlanErrorCode = iota
	// MissingTransactionNodeError indicates a BEGIN/COMMIT/ROLLBACK statement whose plan
	// carries no Transaction node.
	MissingTransactionNodeError
	// MissingScanNodeError indicates a read statement without any Scan node.
	MissingScanNodeError
	// IllegalPlanError indicates a plan shape the separator cannot rewrite, such as a Join
	// child that is neither a Scan nor a Filter over a Scan, or a tree that fails
	// validation after rewrite.
	IllegalPlanError
	// ResourceExhaustedError is returned when a plan tree runs out of node budget while a
	// boundary or protocol node is being constructed.
	ResourceExhaustedError
	// DuplicateObjectError indicates an attempt to register a partition that already exists
	// in the catalog.
	DuplicateObjectError
	// NoSuchObjectError indicates a request for a partition or node that does not exist.
	NoSuchObjectError
	// InvalidConfigError indicates a configuration value out of range.
	InvalidConfigError
	// DecodeError indicates a plan document that cannot be decoded.
	DecodeError
)

func (ec PlanErrorCode) String() string {
	switch ec {
	case MalformedPlanError:
		return "MalformedPlanError"
	case MissingTransactionNodeError:
		return "MissingTransactionNodeError"
	case MissingScanNodeError:
		return "MissingScanNodeError"
	case IllegalPlanError:
		return "IllegalPlanError"
	case ResourceExhaustedError:
		return "ResourceExhaustedError"
	case DuplicateObjectError:
		return "DuplicateObjectError"
	case NoSuchObjectError:
		return "NoSuchObjectError"
	case InvalidConfigError:
		return "InvalidConfigError"
	case DecodeError:
		return "DecodeError"
	}
	return "unknown"
}

// PlanError is the error type shared by every package of the distributed planner.
// It wraps a PlanErrorCode with a detailed message so that callers can decide whether a
// statement must be aborted before dispatch.
type PlanError struct {
	Code      PlanErrorCode
	ErrString string
}

func (e PlanError) Error() string {
	return fmt.Sprintf("err: %s; msg: %s", e.Code.String(), e.ErrString)
}

// NewPlanError formats a PlanError with the given code.
func NewPlanError(code PlanErrorCode, format string, args ...any) PlanError {
	return PlanError{Code: code, ErrString: fmt.Sprintf(format, args...)}
}

// IsPlanError reports whether err, or any error it wraps, is a PlanError with the given code.
func IsPlanError(err error, code PlanErrorCode) bool {
	var pe PlanError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
