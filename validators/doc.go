// Package validators is the built-in catalog of environment variable specs.
//
// Every factory returns a *env.Var configured through its With* methods:
//
//	specs := env.Specs{}.
//	    With("PORT", validators.Port().WithDefault(8080)).
//	    With("LOG_LEVEL", validators.Str().WithChoices("debug", "info", "warn")).
//	    With("API_KEY", validators.Str().WithTestOnlyDefault("stub").Sensitive())
//
// Custom specs are built with Custom or env.New.
package validators
