// Package auth protects the JSON API with a single static API token.
//
// Only the bcrypt hash of the token is configured (API_TOKEN_HASH); clients
// send the plaintext as "Authorization: Bearer <token>". With no hash
// configured the API is open.
package auth
