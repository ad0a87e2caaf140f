package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"auth-panel/internal/session"
)

const (
	LoginPath     = "/login"
	RegisterPath  = "/register"
	DashboardPath = "/dashboard"
)

// Requirement is the access rule a guarded route enforces.
type Requirement int

const (
	// RequireAuthenticated admits only logged-in sessions.
	RequireAuthenticated Requirement = iota + 1
	// RequireAnonymous admits only sessions without a logged-in user.
	RequireAnonymous
)

func (r Requirement) String() string {
	switch r {
	case RequireAuthenticated:
		return "authenticated"
	case RequireAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

type Action int

const (
	ActionRender Action = iota
	ActionWait
	ActionRedirect
)

// Decision is the outcome of a guard check.
type Decision struct {
	Action   Action
	Location string
}

// Decide resolves requirement against st. requested is the URI the visitor
// asked for; it travels to the login page as the "from" parameter.
func Decide(st session.State, requirement Requirement, requested string) Decision {
	if st.Initializing {
		return Decision{Action: ActionWait}
	}

	switch requirement {
	case RequireAnonymous:
		if st.Authenticated {
			return Decision{Action: ActionRedirect, Location: DashboardPath}
		}
	case RequireAuthenticated:
		if !st.Authenticated {
			loc := LoginPath
			if requested != "" {
				loc += "?" + url.Values{"from": {requested}}.Encode()
			}
			return Decision{Action: ActionRedirect, Location: loc}
		}
	}
	return Decision{Action: ActionRender}
}

const stateKey = "session_state"

// Guard gates the routes behind it on the session state. While the session
// restore is still running a self-refreshing loading page is served.
func Guard(sessions Sessions, requirement Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := sessions.Snapshot()
		d := Decide(st, requirement, c.Request.URL.RequestURI())

		switch d.Action {
		case ActionWait:
			c.HTML(http.StatusOK, "loading.html", gin.H{"Title": "Carregando", "Refresh": 1})
			c.Abort()
		case ActionRedirect:
			c.Redirect(http.StatusFound, d.Location)
			c.Abort()
		default:
			c.Set(stateKey, st)
			c.Next()
		}
	}
}

// stateFrom returns the snapshot the guard admitted the request with.
func stateFrom(c *gin.Context, sessions Sessions) session.State {
	if v, ok := c.Get(stateKey); ok {
		if st, ok := v.(session.State); ok {
			return st
		}
	}
	return sessions.Snapshot()
}
