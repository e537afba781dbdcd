package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLookupRow(t *testing.T) {
	row := `{
		"count": 5059,
		"time_first": 1380139330,
		"time_last": 1427881899,
		"rrname": "www.dnsdb.info.",
		"rrtype": "A",
		"bailiwick": "dnsdb.info.",
		"rdata": ["104.244.13.104"]
	}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(row), &rec))
	assert.Equal(t, "5059", rec.Count.String())
	assert.Equal(t, "1380139330", rec.TimeFirst.String())
	assert.Equal(t, "www.dnsdb.info.", rec.RRName)
	assert.Equal(t, "dnsdb.info.", rec.Bailiwick)
	assert.Equal(t, StringList{"104.244.13.104"}, rec.RData)
	assert.Empty(t, rec.NumResults.String(), "absent fields stay empty")
}

func TestRecordZoneTimes(t *testing.T) {
	row := `{
		"count": 17381,
		"zone_time_first": 1427893644,
		"zone_time_last": 1468329272,
		"rrname": "farsightsecurity.com.",
		"rrtype": "NS",
		"bailiwick": "com.",
		"rdata": ["ns5.dnsmadeeasy.com.", "ns6.dnsmadeeasy.com."]
	}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(row), &rec))
	assert.Equal(t, "1427893644", rec.ZoneTimeFirst.String())
	assert.Empty(t, rec.TimeFirst.String())
	assert.Equal(t, "ns5.dnsmadeeasy.com. ns6.dnsmadeeasy.com.", rec.RData.String())
}

func TestRecordHumanTime(t *testing.T) {
	row := `{"count": 7, "time_first": "2013-09-25T20:02:10Z", "time_last": "2015-04-01T09:51:39Z", "rrname": "www.dnsdb.info."}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(row), &rec))
	assert.Equal(t, "2013-09-25T20:02:10Z", rec.TimeFirst.String())
	assert.Equal(t, "2015-04-01T09:51:39Z", rec.TimeLast.String())
}

func TestRecordFlexRow(t *testing.T) {
	row := `{"rdata": "10 lists.farsightsecurity.com.", "raw_rdata": "000A056C69737473", "rrtype": "MX"}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(row), &rec))
	assert.Equal(t, StringList{"10 lists.farsightsecurity.com."}, rec.RData,
		"flex rows carry rdata as a single string")
	assert.Equal(t, "000A056C69737473", rec.RawRData)
}

func TestRecordSummaryRow(t *testing.T) {
	row := `{"count": 1127, "num_results": 2, "time_first": 1557859313, "time_last": 1560524104}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(row), &rec))
	assert.Equal(t, "1127", rec.Count.String())
	assert.Equal(t, "2", rec.NumResults.String())
	assert.Empty(t, rec.RRName)
}

func TestRecordNullRData(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"rdata": null}`), &rec))
	assert.Nil(t, rec.RData)
}
