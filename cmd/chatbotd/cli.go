package main

// CLI defines the server's command-line flags for Kong. Every flag can also
// be set through the environment, which is how the .env file feeds in.
type CLI struct {
	Addr      string `help:"HTTP listen address." env:"CHATBOT_ADDR" default:":8000"`
	Agent     string `help:"Chat backend." enum:"gemini,openai" env:"CHATBOT_AGENT" default:"gemini"`
	Model     string `help:"Override the chat model." env:"CHATBOT_MODEL"`
	NoBrowser bool   `help:"Disable the headless browser and fetch pages statically."`
}
