package version

// Version and BuildTime are set with -ldflags "-X github.com/ladderbot/ladderbot/pkg/version.Version=..."
var Version = "v0.1.0-dev"

var BuildTime = ""
