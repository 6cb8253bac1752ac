package mock

import (
	"context"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.Recognizer = (*Recognizer)(nil)

// Recognizer is a mock implementation of chatbot.Recognizer.
type Recognizer struct {
	StartFn func(ctx context.Context, onSegment chatbot.SegmentFunc, onError func(error)) error
	StopFn  func() error
}

func (r *Recognizer) Start(ctx context.Context, onSegment chatbot.SegmentFunc, onError func(error)) error {
	return r.StartFn(ctx, onSegment, onError)
}

func (r *Recognizer) Stop() error {
	if r.StopFn == nil {
		return nil
	}
	return r.StopFn()
}

var _ chatbot.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of chatbot.Synthesizer.
type Synthesizer struct {
	SpeakFn  func(ctx context.Context, text string, done func()) error
	CancelFn func() error
}

func (s *Synthesizer) Speak(ctx context.Context, text string, done func()) error {
	return s.SpeakFn(ctx, text, done)
}

func (s *Synthesizer) Cancel() error {
	if s.CancelFn == nil {
		return nil
	}
	return s.CancelFn()
}
