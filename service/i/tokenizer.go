package i

// Tokenizer verifies bearer tokens issued by the identity service.
type Tokenizer interface {
	// Decode validates a token and returns its claims.
	Decode(token string) (map[string]interface{}, error)
}
