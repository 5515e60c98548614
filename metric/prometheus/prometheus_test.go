package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kanjigo"
	kanjitestutil "github.com/hupe1980/kanjigo/testutil"
)

func TestCollector(t *testing.T) {
	reg := prom.NewRegistry()
	c := NewCollector(reg, "kanjigo")

	c.RecordQuery(3, false, time.Millisecond, nil)
	c.RecordQuery(3, true, time.Microsecond, nil)
	c.RecordQuery(0, false, time.Microsecond, errors.New("boom"))
	c.RecordLoad(0, time.Millisecond, errors.New("miss"))
	c.RecordBuild(42, time.Second, nil)
	c.RecordSave(time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.queries.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queries.WithLabelValues("miss")))
	assert.Equal(t, 42.0, testutil.ToFloat64(c.records))
	assert.Equal(t, 5, testutil.CollectAndCount(c.opLatency))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"kanjigo_operation_latency_seconds",
		"kanjigo_queries_total",
		"kanjigo_query_results",
		"kanjigo_records",
	}, names)
}

func TestCollector_Catalog(t *testing.T) {
	ctx := context.Background()
	c := NewCollector(prom.NewRegistry(), "test")

	cat, err := kanjigo.Open(ctx,
		kanjigo.WithStore(kanjitestutil.NewStore(t)),
		kanjigo.WithMetricsCollector(c),
	)
	require.NoError(t, err)
	defer cat.Close()

	for range 2 {
		_, err := cat.Query(ctx, "grade=1")
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queries.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queries.WithLabelValues("miss")))
}
