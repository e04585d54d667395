package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap"
)

type countingHandler struct {
	called int
}

var _ tokenswap.Handler = (*countingHandler)(nil)

func (h *countingHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.CheckResult, error) {
	h.called++
	return &tokenswap.CheckResult{}, nil
}

func (h *countingHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, ins *tokenswap.Instruction) (*tokenswap.DeliverResult, error) {
	h.called++
	return &tokenswap.DeliverResult{}, nil
}

func TestRouter(t *testing.T) {
	r := NewRouter()
	h := &countingHandler{}
	r.Handle(7, h)

	assert.Nil(t, r.Route(0))
	require.NotNil(t, r.Route(7))

	_, err := r.Route(7).Deliver(nil, nil, &tokenswap.Instruction{})
	require.NoError(t, err)
	assert.Equal(t, 1, h.called)
}

func TestRouterRejectsDuplicates(t *testing.T) {
	r := NewRouter()
	r.Handle(1, &countingHandler{})
	assert.Panics(t, func() {
		r.Handle(1, &countingHandler{})
	})
}
