package internal

// Version is set at build time via -ldflags "-X github.com/coral-developers/coral-web/internal.Version=..."
var Version = "dev"
