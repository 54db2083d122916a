package domain

import (
	"errors"
	"fmt"
)

// Kind classifies why a requested mutation did not happen, so callers can
// react differently (fix input, refresh view, retry, or surface verbatim).
type Kind string

const (
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindNotFound          Kind = "NOT_FOUND"
	KindDuplicateName     Kind = "DUPLICATE_NAME"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindTransactionFailed Kind = "TRANSACTION_FAILED"
)

// Rejection is a structured, non-exceptional failure result. A Rejection
// always means the store is exactly as it was before the call.
type Rejection struct {
	Kind      Kind
	Message   string
	Available int   // set for KindInsufficientStock
	Cause     error // set for KindTransactionFailed
}

func (r *Rejection) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("%s: %v", r.Message, r.Cause)
	}
	return r.Message
}

func (r *Rejection) Unwrap() error { return r.Cause }

func InvalidInput(msg string) *Rejection {
	return &Rejection{Kind: KindInvalidInput, Message: msg}
}

func NotFound(msg string) *Rejection {
	return &Rejection{Kind: KindNotFound, Message: msg}
}

func DuplicateName(name string) *Rejection {
	return &Rejection{Kind: KindDuplicateName, Message: fmt.Sprintf("a product named %q already exists", name)}
}

func InsufficientStock(available int) *Rejection {
	return &Rejection{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("not enough stock, available: %d", available),
		Available: available,
	}
}

func TransactionFailed(cause error) *Rejection {
	return &Rejection{Kind: KindTransactionFailed, Message: "transaction failed", Cause: cause}
}

// KindOf returns the rejection kind of err, or "" if err is not a Rejection.
func KindOf(err error) Kind {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Kind
	}
	return ""
}
