package action

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/capability"
)

type ticket struct {
	Subject  string `json:"subject" validate:"required"`
	Priority int    `json:"priority,omitempty"`
}

type helpdesk struct {
	opened []string
}

func (h *helpdesk) Open(ctx context.Context, t ticket) (string, error) {
	h.opened = append(h.opened, t.Subject)
	return "T-" + t.Subject, nil
}

func (h *helpdesk) Assign(ticketID string, owner string) string {
	return ticketID + "@" + owner
}

func (h *helpdesk) Count() int { return len(h.opened) }

func (h *helpdesk) Escalate(ticketID string) error {
	return errors.New("escalation disabled")
}

func init() {
	capability.MustDeclare[helpdesk](
		capability.Tool("Open", capability.WithDescription("open a ticket")),
		capability.Tool("Assign", capability.WithParams("ticket_id", "owner")),
		capability.Callable("Count"),
		capability.Callable("Escalate"),
	)
}

type clash struct{}

func (c *clash) Open() string  { return "tool" }
func (c *clash) Other() string { return "callable" }

func init() {
	capability.MustDeclare[clash](
		capability.Tool("Open"),
		capability.Callable("Other", capability.WithName("open")),
	)
}

func TestNew_Methods(t *testing.T) {
	svc, err := New("helpdesk", &helpdesk{})
	require.NoError(t, err)
	assert.Equal(t, "helpdesk", svc.Name())

	byName := map[string]bool{}
	for i := range svc.Methods() {
		sig := svc.Methods()[i]
		byName[sig.Name] = true
		assert.NotEmpty(t, sig.Description)
		assert.Equal(t, outputType, sig.Output)
	}
	assert.Equal(t, map[string]bool{"open": true, "assign": true, "count": true, "escalate": true}, byName)
	assert.True(t, svc.Internal("count"))
	assert.False(t, svc.Internal("open"))
	assert.True(t, Hidden(svc, svc.Methods().Lookup("escalate")))
	assert.False(t, Hidden(svc, svc.Methods().Lookup("assign")))

	_, err = svc.Method("missing")
	assert.Error(t, err)

	binding, ok := svc.Binding("assign")
	require.True(t, ok)
	assert.Equal(t, "helpdesk.Assign", binding.Owner())
	assert.Equal(t, []string{"ticket_id", "owner"}, binding.Params)
	_, ok = svc.Binding("missing")
	assert.False(t, ok)
}

func TestService_Tools(t *testing.T) {
	ctx := context.Background()
	desk := &helpdesk{}
	svc, err := New("helpdesk", desk)
	require.NoError(t, err)

	testCases := []struct {
		description string
		method      string
		input       interface{}
		expect      interface{}
		expectErr   bool
	}{
		{
			description: "record parameter",
			method:      "open",
			input:       &ticket{Subject: "printer"},
			expect:      "T-printer",
		},
		{
			description: "record parameter from map",
			method:      "open",
			input:       map[string]interface{}{"subject": "vpn", "priority": 2},
			expect:      "T-vpn",
		},
		{
			description: "validation failure",
			method:      "open",
			input:       map[string]interface{}{"priority": 1},
			expectErr:   true,
		},
		{
			description: "named parameters",
			method:      "assign",
			input:       map[string]interface{}{"ticket_id": "T-1", "owner": "ops"},
			expect:      "T-1@ops",
		},
	}

	for _, testCase := range testCases {
		exec, err := svc.Method(testCase.method)
		require.NoError(t, err, testCase.description)
		output := &Output{}
		err = exec(ctx, testCase.input, output)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, output.Result, testCase.description)
	}
	assert.Equal(t, []string{"printer", "vpn"}, desk.opened)
}

func TestService_Callables(t *testing.T) {
	ctx := context.Background()
	svc, err := New("helpdesk", &helpdesk{opened: []string{"a", "b"}})
	require.NoError(t, err)

	count, err := svc.Method("count")
	require.NoError(t, err)
	var result interface{}
	require.NoError(t, count(ctx, &Args{}, &result))
	assert.EqualValues(t, 2, result)

	escalate, err := svc.Method("escalate")
	require.NoError(t, err)
	err = escalate(ctx, &Args{Args: []interface{}{"T-1"}}, &Output{})
	assert.ErrorContains(t, err, "escalation disabled")

	err = escalate(ctx, &Args{}, &Output{})
	var argErr *bridge.ArgumentError
	assert.True(t, errors.As(err, &argErr))
}

func TestNew_Collision(t *testing.T) {
	_, err := New("clash", &clash{})
	var dup *bridge.DuplicateNameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "open", dup.Name)
}
