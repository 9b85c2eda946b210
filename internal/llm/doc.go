// Package llm is a minimal client for the Anthropic Messages API shared by
// the pairing and label-recognition features.
//
// A Client resolves the API key and model on every call through a
// CredentialsProvider, posts one user turn (plain text or text plus an
// image) and returns the text of the first content block of the reply.
// ExtractJSON recovers the JSON object embedded in a free-form reply.
package llm
