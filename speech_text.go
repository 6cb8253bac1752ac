package chatbot

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxSpeechChars is the maximum number of characters handed to a Synthesizer.
// Longer responses are truncated with SpeechTruncationMarker.
const MaxSpeechChars = 500

// SpeechTruncationMarker is appended to speech text cut at MaxSpeechChars.
const SpeechTruncationMarker = "… (truncated)"

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasisRe   = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// SpeechText converts markdown into plain text suitable for a Synthesizer.
// It removes fenced code blocks, strips inline code markers, replaces links
// with their text, drops images, removes heading and emphasis markers, and
// collapses all whitespace. The result is truncated to MaxSpeechChars.
func SpeechText(markdown string) string {
	s := fencedCodeRe.ReplaceAllString(markdown, " ")
	s = imageRe.ReplaceAllString(s, " ")
	s = linkRe.ReplaceAllString(s, "$1")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "$2")
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) > MaxSpeechChars {
		runes := []rune(s)
		s = string(runes[:MaxSpeechChars]) + SpeechTruncationMarker
	}
	return s
}

// EstimateSpokenDuration estimates how long a Synthesizer will take to speak
// text, from character count alone. Used to arm the fallback timer that
// forces playback state back to idle when the engine never signals
// completion.
func EstimateSpokenDuration(text string) time.Duration {
	// ~60ms per character approximates typical synthesis speed, with
	// padding so the fallback never fires before a well-behaved engine.
	return 2*time.Second + time.Duration(len(text))*60*time.Millisecond
}
