package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-31", d.String())

	d, err = ParseDate("2025-03-04T23:10:00+05:00")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.March, 4), d, "из RFC3339 берётся только дата")

	_, err = ParseDate("31.01.2025")
	assert.Error(t, err)
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	moment := time.Date(2025, time.January, 31, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-01", DateOf(moment, loc).String())
	assert.Equal(t, "2025-01-31", DateOf(moment, time.UTC).String())
}

func TestDaysUntil(t *testing.T) {
	today := NewDate(2025, time.February, 27)
	assert.Equal(t, 0, today.DaysUntil(today))
	assert.Equal(t, 2, today.DaysUntil(NewDate(2025, time.March, 1)))
	assert.Equal(t, -1, today.DaysUntil(NewDate(2025, time.February, 26)))
}

func TestFirstOfMonth(t *testing.T) {
	d := NewDate(2025, time.January, 15)
	assert.Equal(t, "2024-12-01", d.FirstOfMonth(-1).String())
	assert.Equal(t, "2024-02-01", d.FirstOfMonth(-11).String())
	assert.Equal(t, "2025-01", d.FirstOfMonth(0).MonthKey())
}

func TestNullDateJSON(t *testing.T) {
	type payload struct {
		Fecha NullDate `json:"fecha"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"fecha":null}`), &p))
	assert.False(t, p.Fecha.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"fecha":""}`), &p))
	assert.False(t, p.Fecha.Valid, "пустая строка трактуется как отсутствие даты")

	require.NoError(t, json.Unmarshal([]byte(`{"fecha":"2025-05-06"}`), &p))
	require.True(t, p.Fecha.Valid)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fecha":"2025-05-06"}`, string(out))

	out, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fecha":null}`, string(out))
}

func TestNullDateScan(t *testing.T) {
	var n NullDate
	require.NoError(t, n.Scan(nil))
	assert.False(t, n.Valid)

	require.NoError(t, n.Scan(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NullDateFrom(NewDate(2024, time.July, 1)), n)

	require.NoError(t, n.Scan([]byte("2024-07-02")))
	assert.Equal(t, "2024-07-02", n.Date.String())

	v, err := NullDate{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
