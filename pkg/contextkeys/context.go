package contextkeys

// Custom key type avoids collisions with other context users.
type contextKey string

// DBContextKey holds the request-scoped *gorm.DB (pool or test transaction).
const DBContextKey = contextKey("db")

// PrincipalContextKey holds the resolved auth.Principal for the request.
const PrincipalContextKey = contextKey("principal")
