package clipboard

// Platform names the backend NewSystem uses on this build.
func Platform() string {
	return platformName
}

// AllFormats reports whether the platform backend carries file lists,
// bitmaps and text. Only the Windows backend does.
func AllFormats() bool {
	return platformAllFormats
}
