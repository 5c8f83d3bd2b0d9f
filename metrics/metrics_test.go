package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	StoreOperations.Reset()
	Observe("create", false, nil)
	Observe("create", false, nil)
	Observe("find-id", true, nil)
	Observe("find-id", true, errors.New("fail"))

	assert.Equal(t, 2.0, testutil.ToFloat64(StoreOperations.WithLabelValues("create", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(StoreOperations.WithLabelValues("find-id", OutcomeAbsent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(StoreOperations.WithLabelValues("find-id", OutcomeError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(StoreOperations.WithLabelValues("find-id", OutcomeOK)))
}

func TestRegisterCollectors(t *testing.T) {
	StoreOperations.Reset()
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)
	Observe("delete-id", false, nil)
	count, err := testutil.GatherAndCount(reg, "people_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Panics(t, func() { RegisterCollectors(reg) })
}
