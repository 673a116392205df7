package device

import "errors"

var (
	// ErrBoundToOtherUser means the device already belongs to a
	// different employee; only an administrator can release it.
	ErrBoundToOtherUser = errors.New("this device is already registered to another employee")

	// ErrUnrecognizedDevice means the user already holds a binding for
	// a different device.
	ErrUnrecognizedDevice = errors.New("unrecognized device")
)
