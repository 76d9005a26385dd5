package handler

const (
	// RootPath is the root path of the route group.
	RootPath = "/"

	// SessionCookie is the name of the login session cookie.
	SessionCookie = "session"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
