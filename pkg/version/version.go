// Package version holds the application version.
package version

// Version is the application version string.
const Version = "0.1.0"
