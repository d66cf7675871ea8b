package mathscript

// Version is the interpreter version reported by the CLI and the REPL banner.
const Version = "0.3.1"
