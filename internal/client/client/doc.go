// Package client talks to the gophfav HTTP API.
//
// HTTPClient keeps the bearer token returned by Login and presents it as
// "Authorization: jwt <token>" on favourites calls. Failed calls surface as
// *APIError carrying the server's error kind; transport failures match
// ErrUnavailable and rejected credentials match ErrUnauthorized with
// errors.Is.
package client
