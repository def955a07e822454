package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is rejected before
	// any storage or transport call is made.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongCredentials is returned when a login attempt fails the
	// password check.
	ErrWrongCredentials = errors.New("wrong login or password")

	// ErrSyncInFlight is returned by the coordinator when a cycle is already
	// running; the concurrent trigger is dropped, not queued.
	ErrSyncInFlight = errors.New("sync cycle already in flight")
)
