package version

// Version is the current version of the reassignctl tool.
const Version = "0.4.0"
