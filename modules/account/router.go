package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the account module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	Password Mountable
}

// Router creates the account module router.
//
// Example:
//
//	passwordSvc := account.NewPasswordService(cfg, strategy, registrar, sessionMgr)
//
//	r := chi.NewRouter()
//	r.Mount("/account", account.Router(account.RouterOptions{
//	    Password: passwordSvc,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(auth chi.Router) {
		if opts.Password != nil {
			auth.Mount("/password", opts.Password.Handle())
		}
	})

	return r
}
