package ai

import "errors"

var (
	// ErrSynthesis means the model's query-config output could not be turned
	// into a usable query descriptor. Fatal for the turn.
	ErrSynthesis = errors.New("query synthesis failed")

	// ErrInsight means the model returned an empty or unparseable insight
	// response. Fatal for the turn.
	ErrInsight = errors.New("insight generation failed")
)
