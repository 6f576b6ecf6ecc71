package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/fields"
)

func TestReadRecordKeepsScalarText(t *testing.T) {
	record, err := readRecord("-", strings.NewReader(`
zip: 02134
fb_login_id: 1234567890123456789
lead_id: 9007199254740993
ph: [16505551234, 16505550000]
email: "a@x.com"
fbp: ~
ge:
`))
	require.NoError(t, err)
	require.Equal(t, "02134", record["zip"])
	require.Equal(t, "1234567890123456789", record["fb_login_id"])
	require.Equal(t, []any{"16505551234", "16505550000"}, record["ph"])
	require.Nil(t, record["fbp"])
	require.Nil(t, record["ge"])

	u, err := adsignal.FromPayload(record)
	require.NoError(t, err)
	for name, want := range map[fields.Name]string{
		fields.Zip:       "02134",
		fields.FbLoginID: "1234567890123456789",
		fields.LeadID:    "9007199254740993",
		fields.Phone:     "16505551234",
		fields.Email:     "a@x.com",
	} {
		got, ok := u.Get(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}
	require.False(t, u.Has(fields.Fbp))
}

func TestReadRecordJSONInput(t *testing.T) {
	record, err := readRecord("-", strings.NewReader(`{"external_id": 12345678901234567890, "ct": "menlopark"}`))
	require.NoError(t, err)
	require.Equal(t, "12345678901234567890", record["external_id"])
	require.Equal(t, "menlopark", record["ct"])
}

func TestReadRecordEmptyAndInvalid(t *testing.T) {
	record, err := readRecord("-", strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, record)

	_, err = readRecord("-", strings.NewReader("- just\n- a list\n"))
	require.Error(t, err)

	_, err = readRecord("", strings.NewReader(""))
	require.ErrorIs(t, err, errNoRecord)
}
