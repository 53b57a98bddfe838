package txbundle

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrNoItems is returned for a request without any items.
	ErrNoItems = errors.New("at least one item is required")

	// ErrUnresolvedRecipient is returned when a recipient input has no resolved address.
	ErrUnresolvedRecipient = errors.New("recipient could not be resolved")

	// ErrZeroAddress is returned when a recipient resolves to the zero address.
	ErrZeroAddress = errors.New("recipient is the zero address")

	// ErrMissingSchedule is returned when an escrow or stream item has no schedule.
	ErrMissingSchedule = errors.New("schedule is required")

	// ErrMissingMilestone is returned when an escrow item carries no milestone details.
	ErrMissingMilestone = errors.New("milestone details are required")

	// ErrEscrowCliff is returned when an escrow milestone schedule carries a cliff. Milestones are
	// released by the client, not unlocked over time, so the escrow factory takes no cliff.
	ErrEscrowCliff = errors.New("escrow milestones do not support a cliff")

	// ErrInvalidToken is returned when the token descriptor was not confirmed as a valid token.
	ErrInvalidToken = errors.New("token is not valid")

	// ErrInvalidField is returned for a field failing tag validation.
	ErrInvalidField = errors.New("invalid field")

	// ErrMetadataUploadFailed is the sentinel matched by every MetadataUploadError.
	ErrMetadataUploadFailed = errors.New("metadata upload failed")

	// ErrMissingMetadataReference is returned when an escrow is compiled without a metadata
	// reference.
	ErrMissingMetadataReference = errors.New("missing metadata reference")
)

// RequestIndex is the FieldError index of errors that apply to the whole request.
const RequestIndex = -1

// FieldError is a validation failure of one field of one item, or of the request as a whole when
// Index is RequestIndex.
type FieldError struct {
	Index int
	Label string
	Field string
	Err   error
}

// NewFieldError creates a new FieldError.
func NewFieldError(index int, label, field string, err error) *FieldError {
	return &FieldError{Index: index, Label: label, Field: field, Err: err}
}

// NewRequestError creates a FieldError that applies to the whole request.
func NewRequestError(field string, err error) *FieldError {
	return &FieldError{Index: RequestIndex, Field: field, Err: err}
}

// Error renders items with their one based position, e.g. "Recipient #2 recipient: ...".
func (e *FieldError) Error() string {
	if e.Index == RequestIndex {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("%s #%d %s: %v", e.Label, e.Index+1, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationErrors is the complete list of field errors of a request.
type ValidationErrors []*FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}

	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, fe := range e {
		errs = append(errs, fe)
	}

	return errs
}

// ForIndex returns the error of the item at index, or nil.
func (e ValidationErrors) ForIndex(index int) *FieldError {
	for _, fe := range e {
		if fe.Index == index {
			return fe
		}
	}

	return nil
}

// InsufficientBalanceError is returned when the items of a request add up to more than the
// treasury holds.
type InsufficientBalanceError struct {
	Required  *big.Int
	Available *big.Int
}

// NewInsufficientBalanceError creates a new InsufficientBalanceError.
func NewInsufficientBalanceError(required, available *big.Int) *InsufficientBalanceError {
	return &InsufficientBalanceError{Required: required, Available: available}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s", e.Required, e.Available)
}

// MetadataUploadError wraps the failure of the metadata collaborator.
type MetadataUploadError struct {
	Err error
}

// NewMetadataUploadError creates a new MetadataUploadError.
func NewMetadataUploadError(err error) *MetadataUploadError {
	return &MetadataUploadError{Err: err}
}

func (e *MetadataUploadError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMetadataUploadFailed, e.Err)
}

func (e *MetadataUploadError) Unwrap() []error {
	return []error{ErrMetadataUploadFailed, e.Err}
}
