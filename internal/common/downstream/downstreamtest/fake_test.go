package downstreamtest

import (
	"context"
	"net/http"
	"testing"

	"engdata-admin/internal/common/downstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFake_ScriptedResultsInOrderLastRepeats(t *testing.T) {
	fake := New()
	fake.OnRoute(http.MethodPost, "/clients/", Fail(http.StatusServiceUnavailable, "busy"), Created("client_id", "C1"))
	fake.OnRoute(http.MethodPost, "/clients/", Created("client_id", "C2"))

	req := downstream.Request{Method: http.MethodPost, Path: "/clients/"}
	ctx := context.Background()

	assert.Equal(t, "busy", fake.Call(ctx, req).Message)
	assert.Equal(t, "C1", fake.Call(ctx, req).ID("client_id"))
	assert.Equal(t, "C2", fake.Call(ctx, req).ID("client_id"))
	assert.Equal(t, "C2", fake.Call(ctx, req).ID("client_id"))

	fake.AssertNumberOfCalls(t, "Call", 4)
	assert.Equal(t, 4, fake.CallCount(http.MethodPost, "/clients/"))
}

func TestFake_UnscriptedRouteAnswersNotFound(t *testing.T) {
	fake := New()
	fake.OnRoute(http.MethodDelete, "/files/F1", OK(nil))

	res := fake.Call(context.Background(), downstream.Request{Method: http.MethodDelete, Path: "/files/F2"})
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = fake.Call(context.Background(), downstream.Request{Method: http.MethodDelete, Path: "/files/F1"})
	assert.True(t, res.OK)

	assert.Equal(t, []string{"DELETE /files/F2", "DELETE /files/F1"}, fake.Routes())
	fake.AssertCalled(t, "Call", mock.Anything, downstream.Request{Method: http.MethodDelete, Path: "/files/F1"})
}
