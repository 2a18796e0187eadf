package routerman

import "net/http"

// Redirect returns a reply with the given Location and redirect status.
// Statuses outside the 3xx range fall back to 302 Found.
func Redirect(location string, status int) Reply {
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	return With(Status(status), SetHeader("Location", location))
}

// RedirectPermanent returns a 308 Permanent Redirect reply, preserving
// the request method across the redirect.
func RedirectPermanent(location string) Reply {
	return Redirect(location, http.StatusPermanentRedirect)
}

// RedirectTemporary returns a 307 Temporary Redirect reply.
func RedirectTemporary(location string) Reply {
	return Redirect(location, http.StatusTemporaryRedirect)
}

// RedirectSeeOther returns a 303 See Other reply, useful after a POST.
func RedirectSeeOther(location string) Reply {
	return Redirect(location, http.StatusSeeOther)
}
