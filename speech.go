package chatbot

import "context"

// Speech error codes, used alongside the application error codes to classify
// voice adapter failures. Permission and network failures are surfaced to the
// user; everything else resets voice state silently.
const (
	EPERMISSION    = "permission"
	ESPEECHNETWORK = "speech_network"
)

// Segment is one recognition result from a Recognizer. Interim segments may
// be revised by later results; final segments are stable and may be
// accumulated.
type Segment struct {
	Text  string
	Final bool
}

// SegmentFunc receives recognition segments as they are produced.
type SegmentFunc func(seg Segment)

// Recognizer streams speech-to-text. Implementations wrap a platform speech
// API; availability is probed at session start and absence degrades the
// voice features without affecting the rest of the session.
type Recognizer interface {
	// Start begins continuous recognition with interim results enabled.
	// Segments are delivered to onSegment and asynchronous failures to
	// onError until Stop is called. Returns EUNAVAILABLE if recognition
	// cannot be started.
	Start(ctx context.Context, onSegment SegmentFunc, onError func(error)) error

	// Stop ends recognition. A final segment already in flight may still be
	// delivered shortly after Stop returns.
	Stop() error
}

// Synthesizer speaks text aloud. Implementations are not required to signal
// completion reliably; callers guard with their own fallback timing.
type Synthesizer interface {
	// Speak begins speaking text and returns immediately.
	// The done callback fires when playback finishes, if the underlying
	// engine reports completion at all.
	Speak(ctx context.Context, text string, done func()) error

	// Cancel stops any in-progress speech immediately.
	Cancel() error
}
