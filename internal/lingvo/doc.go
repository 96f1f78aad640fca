// Package lingvo is a client for the Lingvo Live dictionary API.
//
// A Client exchanges an API key for a bearer token on construction and keeps
// that token for every lookup. When the service rejects the token with 401,
// the client re-authenticates and replays the same request once.
//
// # Usage
//
//	client, err := lingvo.New(ctx, lingvo.Config{APIKey: key})
//	if err != nil {
//		return err // errors.Is(err, lingvo.ErrInvalidAPIKey) for a bad key
//	}
//	forms, err := client.GetWordForms(ctx, "cat", lang.EN)
//
// Non-2xx responses other than the retried 401 are not errors: they come back
// as results whose envelope has IsOk set to false. Use Response.Err to turn
// such an envelope into a *RemoteError.
//
// Requests describe themselves through the Request interface: the API method,
// the ordered query parameters, the key under which a bare JSON array body is
// wrapped, and the value the body decodes into.
package lingvo
