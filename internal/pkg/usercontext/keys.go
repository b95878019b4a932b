package usercontext

// LocalsKey is where the middleware stashes the resolved UserContext on the
// request locals.
const LocalsKey = "USER_CONTEXT"

// Session keys shared between the login controller and the context middleware.
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyIsAdmin       = "isAdmin"
	KeyFromProtected = "from_protected"
)
