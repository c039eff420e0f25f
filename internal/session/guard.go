package session

// LoginRoute is the view anonymous users are redirected to
const LoginRoute = "login"

// Decision is the guard's verdict for a protected view
type Decision int

const (
	// DecisionWait means the session is still resolving; show a neutral
	// waiting indicator and do not navigate
	DecisionWait Decision = iota
	// DecisionRedirect means the user must authenticate first
	DecisionRedirect
	// DecisionAllow means the protected view renders unchanged
	DecisionAllow
)

// GuardResult carries the decision and, for redirects, where to go and
// where to resume afterwards
type GuardResult struct {
	Decision Decision

	// RedirectTo is the view to navigate to when Decision is
	// DecisionRedirect
	RedirectTo string

	// Next is the originally intended view, preserved so the flow can
	// resume there after login
	Next string
}

// Guard decides whether a protected view may render. It is a pure function
// of the session snapshot at call time and holds no state of its own.
func Guard(snap Snapshot, intended string) GuardResult {
	switch snap.State {
	case StateUninitialized, StateLoading:
		return GuardResult{Decision: DecisionWait}
	case StateAuthenticated:
		return GuardResult{Decision: DecisionAllow}
	default:
		return GuardResult{
			Decision:   DecisionRedirect,
			RedirectTo: LoginRoute,
			Next:       intended,
		}
	}
}
