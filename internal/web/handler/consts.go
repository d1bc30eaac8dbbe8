package handler

const (
	// RootPath is the root path of the API route group.
	RootPath = "/"

	// ErrNilRCDFatalLogMsg is used if the router, cfg or db pointer is nil.
	ErrNilRCDFatalLogMsg = "router, cfg or db is nil"

	// MsgInternalError is the catch-all failure message.
	MsgInternalError = "Internal server error"
)
