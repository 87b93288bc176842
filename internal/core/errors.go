package core

import "errors"

var (
	errNoRobots      = errors.New("problem declares no robots")
	errMissingStarts = errors.New("fewer start poses than robots")
	errBadHeights    = errors.New("max height below min height")
)
