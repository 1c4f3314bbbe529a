package version

// Set via -ldflags at build time.
var (
	AppName    = "mlvs-bot"
	AppVersion = "dev"
)
