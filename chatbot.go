// Package chatbot provides a demo chatbot that answers questions about
// websites. Page content is crawled, converted to markdown, embedded, and
// stored in a local knowledge base; a hosted language model answers user
// questions grounded in that knowledge base. A terminal client drives the
// chat session, including optional voice capture and playback.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, rod/).
package chatbot
