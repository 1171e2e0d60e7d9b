// Package cookie writes plain and HMAC-signed cookies with shared defaults
// (path "/", HttpOnly, SameSite=Lax). The session id is signed; the theme
// preference is plain because page scripts never need to trust it.
package cookie
