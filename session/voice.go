package session

import (
	"context"
	"strings"
	"sync"
	"time"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// DefaultSettleDelay is how long a stop action waits before reading the
// capture buffer, so a final recognition result already in flight can land.
// Tests shorten it; the exact value is not a contract.
const DefaultSettleDelay = 300 * time.Millisecond

// CaptureState is the voice capture half of the voice state machine.
type CaptureState int

const (
	CaptureIdle CaptureState = iota
	CaptureListening
)

// PlaybackState is the speech playback half of the voice state machine.
type PlaybackState int

const (
	PlaybackIdle PlaybackState = iota
	PlaybackSpeaking
)

// Voice coordinates speech capture and playback for a session. The
// recognizer and synthesizer may each be nil; the corresponding feature
// then degrades to unavailable without affecting the rest of the session.
//
// Capture runs Idle -> Listening -> Idle and playback Idle -> Speaking ->
// Idle. Starting capture resets any stuck playback state first, so the two
// are never actively overlapping.
type Voice struct {
	session     *Session
	recognizer  chatbot.Recognizer
	synthesizer chatbot.Synthesizer
	notifier    Notifier
	settleDelay time.Duration

	mu       sync.Mutex
	capture  CaptureState
	playback PlaybackState
	buffer   []string
	fallback *time.Timer
}

// NewVoice creates the voice coordinator for a session.
func NewVoice(session *Session, recognizer chatbot.Recognizer, synthesizer chatbot.Synthesizer, notifier Notifier) *Voice {
	return &Voice{
		session:     session,
		recognizer:  recognizer,
		synthesizer: synthesizer,
		notifier:    notifier,
		settleDelay: DefaultSettleDelay,
	}
}

// SetSettleDelay overrides the stop settle delay. Intended for tests.
func (v *Voice) SetSettleDelay(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.settleDelay = d
}

// CaptureAvailable reports whether speech capture is wired.
func (v *Voice) CaptureAvailable() bool { return v.recognizer != nil }

// PlaybackAvailable reports whether speech playback is wired.
func (v *Voice) PlaybackAvailable() bool { return v.synthesizer != nil }

// CaptureState returns the current capture state.
func (v *Voice) CaptureState() CaptureState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.capture
}

// PlaybackState returns the current playback state.
func (v *Voice) PlaybackState() PlaybackState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playback
}

// StartCapture begins streaming recognition. The accumulation buffer is
// cleared, and any stuck playback state is reset first. Final segments
// accumulate in the buffer; interim segments are ignored. A start while
// already listening is a no-op.
func (v *Voice) StartCapture(ctx context.Context) error {
	if v.recognizer == nil {
		return chatbot.Errorf(chatbot.EUNAVAILABLE, "speech capture is not available")
	}

	v.mu.Lock()
	if v.capture == CaptureListening {
		v.mu.Unlock()
		return nil
	}
	v.resetPlaybackLocked()
	v.buffer = nil
	v.capture = CaptureListening
	v.mu.Unlock()

	err := v.recognizer.Start(ctx, v.onSegment, v.onCaptureError)
	if err != nil {
		v.mu.Lock()
		v.capture = CaptureIdle
		v.mu.Unlock()
		return err
	}
	return nil
}

// onSegment accumulates final recognition segments.
func (v *Voice) onSegment(seg chatbot.Segment) {
	if !seg.Final {
		return
	}
	text := strings.TrimSpace(seg.Text)
	if text == "" {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.buffer = append(v.buffer, text)
}

// onCaptureError applies the capture failure taxonomy: permission and
// network failures block with an alert; anything else resets silently.
func (v *Voice) onCaptureError(err error) {
	code := chatbot.ErrorCode(err)

	v.mu.Lock()
	v.capture = CaptureIdle
	if code != chatbot.EPERMISSION && code != chatbot.ESPEECHNETWORK {
		v.buffer = nil
	}
	v.mu.Unlock()

	switch code {
	case chatbot.EPERMISSION:
		v.alert("Microphone access was denied. Enable it to use voice input.")
	case chatbot.ESPEECHNETWORK:
		v.alert("Speech recognition lost its network connection. Try again.")
	}
}

func (v *Voice) alert(message string) {
	if v.notifier == nil {
		v.session.logger.Error("alert", "message", message)
		return
	}
	v.notifier.Alert(message)
}

// StopToInput stops capture and returns the accumulated text for the caller
// to place in the input field without sending. Returns "" when nothing was
// captured.
func (v *Voice) StopToInput(ctx context.Context) string {
	return v.stopAndDrain(ctx)
}

// StopAndSend stops capture and feeds the accumulated text straight into the
// chat turn flow, as if typed. With an empty buffer it performs no chat call.
func (v *Voice) StopAndSend(ctx context.Context) (string, bool) {
	text := v.stopAndDrain(ctx)
	if text == "" {
		return "", false
	}
	return v.session.Send(ctx, text)
}

// stopAndDrain stops the recognizer, forces capture idle immediately (not
// waiting for the adapter's own stop acknowledgement), resets any stuck
// playback, waits the settle delay for an in-flight final result, then reads
// and clears the buffer.
func (v *Voice) stopAndDrain(ctx context.Context) string {
	v.mu.Lock()
	wasListening := v.capture == CaptureListening
	v.capture = CaptureIdle
	v.resetPlaybackLocked()
	delay := v.settleDelay
	v.mu.Unlock()

	if wasListening && v.recognizer != nil {
		_ = v.recognizer.Stop()
	}
	if !wasListening {
		return ""
	}

	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}

	v.mu.Lock()
	text := strings.Join(v.buffer, " ")
	v.buffer = nil
	v.mu.Unlock()

	return strings.TrimSpace(text)
}

// Speak reads response text aloud. Markup is stripped and the text truncated
// before synthesis. A fallback timer forces Speaking -> Idle after the
// estimated spoken duration in case the engine never signals completion.
func (v *Voice) Speak(ctx context.Context, text string) error {
	if v.synthesizer == nil {
		return chatbot.Errorf(chatbot.EUNAVAILABLE, "speech playback is not available")
	}

	speech := chatbot.SpeechText(text)
	if speech == "" {
		return nil
	}

	v.mu.Lock()
	v.resetPlaybackLocked()
	v.playback = PlaybackSpeaking
	v.fallback = time.AfterFunc(chatbot.EstimateSpokenDuration(speech), v.finishPlayback)
	v.mu.Unlock()

	err := v.synthesizer.Speak(ctx, speech, v.finishPlayback)
	if err != nil {
		v.mu.Lock()
		v.resetPlaybackLocked()
		v.mu.Unlock()
		return err
	}
	return nil
}

// StopSpeaking cancels playback immediately and clears the fallback timer.
func (v *Voice) StopSpeaking() {
	v.mu.Lock()
	v.resetPlaybackLocked()
	v.mu.Unlock()
}

// finishPlayback is shared by the engine's done callback and the fallback
// timer; whichever fires first wins and the other is a no-op.
func (v *Voice) finishPlayback() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.playback != PlaybackSpeaking {
		return
	}
	v.playback = PlaybackIdle
	if v.fallback != nil {
		v.fallback.Stop()
		v.fallback = nil
	}
}

// resetPlaybackLocked forces playback idle, cancelling the synthesizer and
// the fallback timer. Callers must hold v.mu.
func (v *Voice) resetPlaybackLocked() {
	if v.fallback != nil {
		v.fallback.Stop()
		v.fallback = nil
	}
	if v.playback == PlaybackSpeaking && v.synthesizer != nil {
		_ = v.synthesizer.Cancel()
	}
	v.playback = PlaybackIdle
}
