package common

// UnknownStr is the String() value of enum members without a name.
const UnknownStr = "unknown"
