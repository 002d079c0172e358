package metrics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordHTTPRequest(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordHTTPRequest("GET", "/users", 200, 10*time.Millisecond)
	c.RecordHTTPRequest("GET", "/users", 200, 20*time.Millisecond)
	c.RecordHTTPRequest("GET", "/users", 500, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/users", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/users", "500")))
}

func TestCollector_RecordQuery(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordQuery("list records", "ok", time.Millisecond)
	c.RecordQuery("list records", "query_error", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.dbQueriesTotal.WithLabelValues("list records", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dbQueriesTotal.WithLabelValues("list records", "query_error")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.dbQueryDuration))
}

func TestCollector_RecordPool(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordPoolInit("ok")
	c.RecordPoolStats(sql.DBStats{OpenConnections: 4, Idle: 3, InUse: 1, WaitCount: 7})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.dbPoolInits.WithLabelValues("ok")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.dbConnectionsOpen))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.dbConnectionsIdle))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dbConnectionsUse))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.dbWaitCount))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	require.NotPanics(t, func() {
		c.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		c.RecordQuery("op", "ok", time.Millisecond)
		c.RecordPoolInit("ok")
		c.RecordPoolStats(sql.DBStats{})
	})
}

func TestNewCollector_RegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordPoolInit("ok")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "rolodex_db_pool_init_total")
	assert.Contains(t, names, "rolodex_db_connections_open")
}
