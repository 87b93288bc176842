package tour

import "errors"

var (
	// ErrNoSequence marks a sequencing oracle that produced no usable
	// visiting order. Fatal: the session cannot emit a partial tour.
	ErrNoSequence = errors.New("sequencer returned no usable sequence")

	// ErrNoAnchor marks an oracle result that never visits the synthetic
	// depot node, leaving the tour without a defined start.
	ErrNoAnchor = errors.New("sequencer result contains no anchor node")

	// ErrBadSequence marks a visiting order that is not a permutation of
	// the viewpoint indices.
	ErrBadSequence = errors.New("sequencer returned an invalid permutation")
)
