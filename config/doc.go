// Package config loads and watches client configuration.
//
// Configuration layers, later wins:
//
//  1. Default() — o1-preview limits, 60 calls/minute, default retry
//  2. a TOML or YAML file via Load
//  3. CHATGPTGUI_* environment variables via LoadFromEnv
//
// Example TOML:
//
//	model = "o1-preview"
//	caller = "openai"
//	session_dir = "sessions"
//
//	[budget]
//	max_context_tokens = 128000
//	max_response_tokens = 32768
//
//	[rate_limit]
//	max_calls = 60
//	period = "60s"
//
//	[retry]
//	max_attempts = 5
//	base_delay = "4s"
//	multiplier = 2.0
//	max_delay = "60s"
//
// Watch re-reads the file on change and delivers validated snapshots on
// a channel, so rate and budget settings can be retuned without a
// restart.
package config
