package auth

import (
	"context"
	"net/http"
)

// Doer performs authorized requests. *Manager implements it.
type Doer interface {
	AuthorizedRequest(ctx context.Context, req *Request, out any) error
}

// Get issues an authorized GET and decodes the response into T.
func Get[T any](ctx context.Context, d Doer, path string) (T, error) {
	var out T
	err := d.AuthorizedRequest(ctx, &Request{Method: http.MethodGet, Path: path}, &out)
	return out, err
}

// Post issues an authorized POST with a JSON body.
func Post[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	var out T
	err := d.AuthorizedRequest(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, &out)
	return out, err
}

// Put issues an authorized PUT with a JSON body.
func Put[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	var out T
	err := d.AuthorizedRequest(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, &out)
	return out, err
}

// Patch issues an authorized PATCH with a JSON body.
func Patch[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	var out T
	err := d.AuthorizedRequest(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body}, &out)
	return out, err
}

// Delete issues an authorized DELETE and discards any response body.
func Delete(ctx context.Context, d Doer, path string) error {
	return d.AuthorizedRequest(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}
