package montage

// Version is the library version, surfaced by the CLI and the HTTP API.
const Version = "0.3.0"
