package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave record not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been approved or rejected")
	ErrNotOwner              = errors.New("leave record belongs to another employee")
)
