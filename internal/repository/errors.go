package repository

import "errors"

var (
	// ErrBranchNotFound is returned by branch management operations whose
	// source or target branch does not exist. Plain item/history lookups
	// never return it; those report zero values instead.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBranchExists is returned when creating a branch whose id is taken.
	ErrBranchExists = errors.New("branch already exists")

	// ErrProtectedBranch is returned when deleting the main branch.
	ErrProtectedBranch = errors.New("branch is protected")
)
