package config

const (
	defaultBaseURL        = "https://opensource.samsung.com"
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/99.0.4844.74 Safari/537.36 Edg/99.0.1150.55"
	defaultRequestTimeout = 30
	defaultDownloadDir    = "."
	defaultChunkSizeKiB   = 512
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
//
// InsecureTLS defaults to true because the portal's certificate chain has a
// history of failing verification; the knob exists so operators can turn
// verification back on.
func Default() Config {
	return Config{
		Portal: Portal{
			BaseURL:        defaultBaseURL,
			UserAgent:      defaultUserAgent,
			RequestTimeout: defaultRequestTimeout,
			InsecureTLS:    true,
		},
		Download: Download{
			Dir:          defaultDownloadDir,
			ChunkSizeKiB: defaultChunkSizeKiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
