// Package chatgptgui is the conversation core behind the chatgpt-gui
// application: everything needed to exchange messages with a remote
// text-generation service that enforces a call-rate limit and a
// per-request token budget. Each subpackage can be used independently:
//
//   - ratelimit: thread-safe token-bucket admission control
//   - tokens: message token counting with a swappable tokenizer
//   - window: context-window eviction against a token budget
//   - retry: classification-driven retry with exponential backoff
//   - session: conversation data model and JSON file store
//   - client: the handler that threads a session through the above
//   - config: TOML/YAML configuration with env overrides and hot reload
//
// # Quick Start
//
//	caller := client.CallerFunc(func(ctx context.Context, msgs []session.Message, maxTokens int) (string, error) {
//		// call your API of choice here
//		return "hi!", nil
//	})
//
//	c, err := client.New(caller)
//	if err != nil {
//		log.Fatal(err)
//	}
//	reply, warn, err := c.SendMessage(ctx, "Hello!")
//
// The UI shell (windows, menus, tray icon, export dialogs) lives
// outside this module and talks to it only through the client package.
package chatgptgui
