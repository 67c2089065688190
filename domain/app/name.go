package app

// Name is the application name used in logs, version output and the default configuration path.
const Name = "calcd"
