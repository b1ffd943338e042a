package intake

// Version is the library version, injected into CLI output.
const Version = "0.3.0"
