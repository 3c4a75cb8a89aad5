package common

// AuthHeaderName is the HTTP header that carries the bearer token.
const AuthHeaderName = "Authorization"

// BearerPrefix precedes the token value in the Authorization header.
const BearerPrefix = "Bearer "

// TokenTypeBearer is the token_type value returned with every token pair.
const TokenTypeBearer = "bearer"
