package domain

// View identifies a console view the operator can navigate to.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewLogin        View = "login"
	ViewBackendError View = "backend_error"
	ViewPages        View = "pages"
	ViewPosts        View = "posts"
	ViewUsers        View = "users"
	ViewAccounts     View = "accounts"
	ViewPayments     View = "payments"
	ViewRanks        View = "ranks"
)

// Route is the terminal outcome of one navigation evaluation.
type Route string

const (
	RouteProceed                Route = "proceed"
	RouteRedirectToLogin        Route = "redirect_login"
	RouteRedirectToBackendError Route = "redirect_backend_error"
)

// NavigationDecision is computed once per navigation event and has no
// lifecycle beyond that evaluation. ShowLogout controls whether the
// authenticated-only UI affordance is visible on the resolved view.
type NavigationDecision struct {
	Route      Route `json:"route"`
	ShowLogout bool  `json:"show_logout"`
}
