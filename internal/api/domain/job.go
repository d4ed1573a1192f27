package domain

import (
	"errors"
)

// Sort directions accepted by the job search endpoint.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

var (
	ErrUnauthorized = errors.New("unauthorized access")
)
