package handler

type ContextKey string

var (
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	BusinessCtx      ContextKey = "business"
	ConfigurationCtx ContextKey = "configuration"
)
