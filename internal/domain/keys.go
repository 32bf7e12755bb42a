package domain

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeySession   CtxKey = "Session"
	KeyCSRFToken CtxKey = "CSRFToken"
)
