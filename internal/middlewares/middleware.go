package middlewares

type middleware struct{}

func NewMiddleware() *middleware {
	return &middleware{}
}
