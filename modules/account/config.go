package account

// Config holds the redirect targets for the password authentication
// flows. Failures redirect to the originating form, Post/Redirect/Get
// style, with no hint about which part of the credential was wrong.
type Config struct {
	// LoginRedirect is where a successful login lands.
	LoginRedirect string `env:"ACCOUNT_LOGIN_REDIRECT" envDefault:"/"`

	// LoginFailureRedirect is where a rejected login lands.
	LoginFailureRedirect string `env:"ACCOUNT_LOGIN_FAILURE_REDIRECT" envDefault:"/login"`

	// RegisterRedirect is where a successful registration lands.
	RegisterRedirect string `env:"ACCOUNT_REGISTER_REDIRECT" envDefault:"/"`

	// RegisterFailureRedirect is where a rejected registration lands.
	RegisterFailureRedirect string `env:"ACCOUNT_REGISTER_FAILURE_REDIRECT" envDefault:"/register"`

	// LogoutRedirect is where a logout lands.
	LogoutRedirect string `env:"ACCOUNT_LOGOUT_REDIRECT" envDefault:"/login"`
}

// DefaultConfig returns the redirect defaults used when the module is
// wired without environment configuration.
func DefaultConfig() Config {
	return Config{
		LoginRedirect:           "/",
		LoginFailureRedirect:    "/login",
		RegisterRedirect:        "/",
		RegisterFailureRedirect: "/register",
		LogoutRedirect:          "/login",
	}
}
