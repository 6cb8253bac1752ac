package main

// CLI defines the client's command-line flags and arguments for Kong.
type CLI struct {
	Server      string   `help:"Chatbot server base URL." env:"CHATBOT_SERVER" default:"http://localhost:8000"`
	Transcripts string   `help:"Directory for saved transcripts." env:"CHATBOT_TRANSCRIPTS" default:"."`
	URLs        []string `arg:"" optional:"" help:"Website URLs to load on startup."`
}
