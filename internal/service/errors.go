package service

import "errors"

var (
	// ErrEmptyQuestion is returned before any parsing when the question is blank.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrFeatureDisabled is returned by AnswerLLM when the model path is off.
	ErrFeatureDisabled = errors.New("llm question answering is disabled")

	// ErrUpstreamUnavailable wraps model timeouts and transport failures.
	ErrUpstreamUnavailable = errors.New("llm upstream unavailable")

	// ErrInvalidWindow is returned for a sync window shorter than one day.
	ErrInvalidWindow = errors.New("sync window must cover at least one day")
)
