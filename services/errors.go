package services

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRecipientUnresolved means an employee has no user, personal or company email.
	ErrRecipientUnresolved = errors.New("employee email address could not be resolved")
	// ErrNoHolidayList means neither the employee nor their company has a holiday list.
	ErrNoHolidayList = errors.New("no holiday list assigned")
	// ErrMissingCompany means a group of honorees has no company to address.
	ErrMissingCompany = errors.New("employee has no company")
	ErrInvalidPhone   = errors.New("invalid phone number")
	ErrUnknownKind    = errors.New("unknown reminder kind")
)

// DeliveryError reports a mail that could not reach every recipient.
type DeliveryError struct {
	Delivered int
	Failed    int
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%d of %d recipients failed: %v", e.Failed, e.Delivered+e.Failed, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
