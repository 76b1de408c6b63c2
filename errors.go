package versionator

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// Sentinel errors for engine failures.
var (
	// ErrContradiction indicates a change request that would give one
	// coordinate family two different versions.
	ErrContradiction = errors.New("contradicting versions")

	// ErrDuplicateGroupArtifact indicates two poms with the same group and artifact.
	ErrDuplicateGroupArtifact = errors.New("duplicate group artifact")

	// ErrMissingParent indicates a pom inheriting its version without a parent reference.
	ErrMissingParent = errors.New("version inherited without a parent")

	// ErrParentCycle indicates poms whose parent references form a loop.
	ErrParentCycle = errors.New("parent cycle")

	// ErrModelMismatch indicates two models that cannot be compared pairwise.
	ErrModelMismatch = errors.New("models differ in shape")

	// ErrNoFixedPoint indicates collateral propagation that did not settle.
	ErrNoFixedPoint = errors.New("collateral changes did not converge")
)

// ContradictionError names the coordinate family and the versions that
// collided while closing a change request.
type ContradictionError struct {
	GroupArtifact coord.GroupArtifact
	Existing      version.Version
	Requested     version.Version

	// Via is the family member whose version pulled GroupArtifact in, empty
	// when two explicit inputs collided.
	Via coord.GroupArtifact
}

func (e *ContradictionError) Error() string {
	if e.Via.IsEmpty() {
		return fmt.Sprintf("contradicting versions for %s: %s and %s", e.GroupArtifact, e.Existing, e.Requested)
	}
	return fmt.Sprintf("contradicting versions for %s: %s and %s (implied by %s)",
		e.GroupArtifact, e.Existing, e.Requested, e.Via)
}

func (e *ContradictionError) Unwrap() error { return ErrContradiction }
