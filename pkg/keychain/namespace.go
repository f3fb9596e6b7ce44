package keychain

import "runtime/debug"

// FallbackNamespace is used when neither an explicit namespace nor an
// application identifier is available.
const FallbackNamespace = "com.keychain.service"

var readBuildInfo = debug.ReadBuildInfo

// ApplicationID returns the main module path of the running binary.
func ApplicationID() (string, bool) {
	info, ok := readBuildInfo()
	if !ok || info == nil || info.Main.Path == "" {
		return "", false
	}
	return info.Main.Path, true
}

// ResolveNamespace picks the namespace once at startup: explicit when set,
// then the application identifier, then FallbackNamespace.
func ResolveNamespace(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if id, ok := ApplicationID(); ok {
		return id
	}
	return FallbackNamespace
}
