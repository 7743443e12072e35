package handler

type ContextKey string

var (
	SubCtxKey ContextKey = "sub"
	DriverCtx ContextKey = "driver"
	RouteCtx  ContextKey = "route"
	OrderCtx  ContextKey = "order"
)
