package version

// Version is the single source of truth for the tool version string.
const Version = "1.0.0"
