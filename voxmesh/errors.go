package voxmesh

import "errors"

var (
	// ErrInvalidArgument is returned for parameters no mesh can be built from.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBadPack is returned when a chunk pack cannot be decoded.
	ErrBadPack = errors.New("malformed chunk pack")
	// ErrDigestMismatch is returned when a rebuilt mesh does not hash to the recorded digest.
	ErrDigestMismatch = errors.New("mesh digest mismatch")
)
