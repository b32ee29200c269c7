package message

const (
	InvalidUser  = "Invalid username/password."
	InvalidInput = "Invalid input."
	ServerError  = "Something went wrong."
	NotFound     = "Resource not found."
	EnvErrFmt    = "environment variable is not set: %s"
)
