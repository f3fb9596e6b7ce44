package version

// Version is overridden at build time with -ldflags "-X github.com/alapierre/itrust-keychain/version.Version=...".
var Version = "dev"
