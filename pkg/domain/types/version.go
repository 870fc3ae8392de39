package types

// Version is overwritten by -ldflags at release build time
var Version = "dev"

// AppName is used for temp folder prefixes and user agent
const AppName = "codebind"
