// Package core assembles the courtside client: persistence, session,
// gateway, normalizer and every resource store, built once per process.
//
// A typical caller does:
//
//	c, err := core.New(ctx, cfg)
//	if err != nil { ... }
//	defer c.Close()
//
//	_ = c.Auth.Login(ctx, models.Credentials{Email: "...", Password: "..."})
//	_ = c.Articles.FetchAll(ctx, nil)
//
// New restores a persisted session before returning.
package core
