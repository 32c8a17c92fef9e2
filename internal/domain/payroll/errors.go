package payroll

import "errors"

var (
	ErrInvalidPeriod         = errors.New("invalid payroll period")
	ErrRunNotFound           = errors.New("payroll run not found")
	ErrRunExists             = errors.New("a payroll run already exists for this period")
	ErrAlreadyFinalized      = errors.New("payroll run already finalized")
	ErrCannotDeleteFinalized = errors.New("cannot delete a finalized payroll run")
)
