package handlers

import (
	"net/http"
)

const (
	allowOriginHeader  = "Access-Control-Allow-Origin"
	allowMethodsHeader = "Access-Control-Allow-Methods"
	allowHeadersHeader = "Access-Control-Allow-Headers"
	maxAgeHeader       = "Access-Control-Max-Age"

	allowAnyOrigin  = "*"
	preflightMaxAge = "86400"
)

type preflight struct {
	methods string
	headers string
}

func (p preflight) write(w http.ResponseWriter) {
	w.Header().Set(allowOriginHeader, allowAnyOrigin)
	w.Header().Set(allowMethodsHeader, p.methods)
	w.Header().Set(allowHeadersHeader, p.headers)
	w.Header().Set(maxAgeHeader, preflightMaxAge)
	w.WriteHeader(http.StatusOK)
}
