package paysplit

import "context"

// Context is just a type alias so that handler signatures read in domain
// terms. All authentication information travels in the context, set by the
// authenticator in use.
type Context = context.Context
