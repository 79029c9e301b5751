// Package downstreamtest provides a scripted downstream.Caller for tests.
package downstreamtest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"engdata-admin/internal/common/downstream"

	"github.com/stretchr/testify/mock"
)

// Fake is a mock.Mock-backed downstream.Caller whose expectations are keyed
// by method and path. When several results are scripted for one route they
// are returned in order and the last one repeats. Unscripted routes answer
// 404 so a saga under test fails the way the real service would.
type Fake struct {
	mock.Mock

	last     map[string]*mock.Call
	fallback *mock.Call
}

func New() *Fake {
	f := &Fake{last: make(map[string]*mock.Call)}
	f.fallback = f.Mock.On("Call", mock.Anything, mock.Anything).Return(nil)
	return f
}

// OnRoute scripts the results returned for method and path.
func (f *Fake) OnRoute(method, path string, results ...*downstream.Result) *Fake {
	k := key(method, path)
	for _, res := range results {
		if prev := f.last[k]; prev != nil {
			prev.Once()
		}
		f.last[k] = f.Mock.On("Call", mock.Anything, route(method, path)).Return(res)
	}
	f.keepFallbackLast()
	return f
}

func (f *Fake) Call(ctx context.Context, req downstream.Request) *downstream.Result {
	args := f.Called(ctx, req)
	if res, ok := args.Get(0).(*downstream.Result); ok && res != nil {
		return res
	}
	return Fail(http.StatusNotFound, fmt.Sprintf("no scripted response for %s", key(req.Method, req.Path)))
}

// Requests returns every recorded request in order.
func (f *Fake) Requests() []downstream.Request {
	var out []downstream.Request
	for _, c := range f.Mock.Calls {
		if req, ok := c.Arguments.Get(1).(downstream.Request); ok {
			out = append(out, req)
		}
	}
	return out
}

// CallsTo returns the recorded requests for one route.
func (f *Fake) CallsTo(method, path string) []downstream.Request {
	var out []downstream.Request
	for _, req := range f.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (f *Fake) CallCount(method, path string) int {
	return len(f.CallsTo(method, path))
}

// Routes returns "METHOD path" for every recorded call, in order.
func (f *Fake) Routes() []string {
	reqs := f.Requests()
	out := make([]string, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, key(req.Method, req.Path))
	}
	return out
}

// keepFallbackLast moves the catch-all expectation behind every scripted
// route; mock.Mock picks the first matching expectation.
func (f *Fake) keepFallbackLast() {
	calls := make([]*mock.Call, 0, len(f.ExpectedCalls))
	for _, c := range f.ExpectedCalls {
		if c != f.fallback {
			calls = append(calls, c)
		}
	}
	f.ExpectedCalls = append(calls, f.fallback)
}

func route(method, path string) interface{} {
	return mock.MatchedBy(func(req downstream.Request) bool {
		return req.Method == method && req.Path == path
	})
}

func key(method, path string) string {
	return method + " " + path
}

// OK returns a 200 result with body as the decoded JSON document.
func OK(body map[string]interface{}) *downstream.Result {
	if body == nil {
		body = map[string]interface{}{}
	}
	return &downstream.Result{OK: true, StatusCode: http.StatusOK, Data: body, Message: stringOf(body["message"])}
}

// Created returns a 201 result carrying id under key.
func Created(key, id string) *downstream.Result {
	return &downstream.Result{
		OK:         true,
		StatusCode: http.StatusCreated,
		Data:       map[string]interface{}{key: id},
	}
}

// Fail returns an error result whose body carries message.
func Fail(status int, message string) *downstream.Result {
	return &downstream.Result{
		StatusCode: status,
		Data:       map[string]interface{}{"message": message},
		Message:    message,
	}
}

// TransportError returns a result for a call that never got a response.
func TransportError() *downstream.Result {
	return &downstream.Result{
		Err:     errors.New("dial tcp: connection refused"),
		Message: downstream.TransportErrorMessage,
	}
}

func stringOf(v interface{}) string {
	s, _ := v.(string)
	return s
}
