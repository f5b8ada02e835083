package version

// Name is the application name shown in the TUI header.
var Name = "urlcheck"

// Version is injected at build time via:
//
//	go build -ldflags "-X urlcheck/internal/version.Version=v1.2.3"
var Version = "dev"
