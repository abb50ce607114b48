package casetree

// Version is the library and CLI version. Release builds override it with -ldflags.
var Version = "0.1.0"
