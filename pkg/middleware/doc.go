// Package middleware integrates the access control engine into net/http
// handler chains.
//
// Require guards a route with a scope path. Roles are read from the request
// context, where an authentication layer is expected to have stored them
// with accesscontrol.WithRoles; both the role lookup and the evaluation
// context are configurable per route.
//
//	ac := accesscontrol.New()
//	ac.Grant("user").Resource("article").Action("read")
//
//	r := chi.NewRouter()
//	r.With(middleware.Require(ac, "article:read")).Get("/articles/{id}", showArticle)
//
// Handlers behind the middleware can inspect the decision:
//
//	func showArticle(w http.ResponseWriter, r *http.Request) {
//		perm, _ := middleware.PermissionFromContext(r.Context())
//		if !perm.Field("history") {
//			// strip the history field from the response
//		}
//	}
//
// Denied requests receive a 403 with the denial paths in the body, so a
// caller can see exactly which rules rejected them. Requests with no roles
// get a 401. Evaluation failures (a broken generator, an inheritance cycle
// introduced by a bad policy load) are logged and answered with a 500; they
// are authoring bugs, not denials.
package middleware
