package auth

const (
	MsgLoggedIn  = "Logged in."
	MsgLoggedOut = "Logged out."
	MsgRefreshed = "Token refreshed."
)
