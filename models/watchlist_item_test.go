package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWatchlistStatus(t *testing.T) {
	cases := []struct {
		raw     string
		want    WatchlistStatus
		wantErr bool
	}{
		{raw: "À_VOIR", want: StatusToWatch},
		{raw: "VU", want: StatusWatched},
		{raw: "EN_COURS", want: StatusInProgress},
		{raw: "WATCHED", wantErr: true},
		{raw: "vu", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseWatchlistStatus(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, "raw=%q", tc.raw)
			continue
		}
		assert.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got)
	}
}
