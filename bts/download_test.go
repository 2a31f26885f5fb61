package bts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/go-bts/internal/fakebts"
	"github.com/stretchr/testify/require"
)

// pagedDownloads answers download requests from a channel holding total records.
func pagedDownloads(total int) fakebts.Route {
	return fakebts.Route{
		Match: "<cmd>download</cmd>",
		Handle: func(req string) string {
			start := fakebts.IntAttr(req, "startpos")
			n := min(fakebts.IntAttr(req, "count"), total-start+1)

			return fakebts.DownloadPage(start, max(n, 0))
		},
	}
}

func startPositions(srv *fakebts.Server, verb string) []int {
	var pos []int
	for _, req := range srv.Requests() {
		if strings.Contains(req, "<cmd>"+verb+"</cmd>") {
			pos = append(pos, fakebts.IntAttr(req, "startpos"))
		}
	}

	return pos
}

func TestDownload_LastN(t *testing.T) {
	require := require.New(t)

	srv := fakebts.NewDefault()
	c := newTestClient(t, srv)

	cols, err := c.Download(context.Background(), "21-1-1", 10)
	require.NoError(err)
	require.Equal(10, cols.Rows())
	require.Equal(
		[]string{"seqid", "stepid", "cycleid", "steptype", "testtime", "atime", "volt", "curr", "cap", "eng"},
		cols.Names(),
	)

	seq := cols.Column("seqid")
	require.EqualValues(219576, seq[0])
	require.EqualValues(219585, seq[9])
	require.InDelta(3.6780698299408, cols.Column("volt")[0], 1e-12)
	require.Equal("2025-12-28 22:29:05", cols.Column("atime")[0])
	require.Equal("dc", cols.Column("steptype")[9])

	require.Equal(1, srv.Count("inquiredf"))
	require.Equal(1, srv.Count("download"))
	require.Contains(srv.Last(),
		`<cmd>download</cmd><download devtype="27" devid="21" subdevid="1" chlid="1" auxid="0" testid="0" startpos="219576" count="1000">`)

	m := c.Metrics()
	require.EqualValues(1, m.PageRecvCount.Load())
	require.EqualValues(10, m.RecordRecvCount.Load())
}

func TestDownload_Empty(t *testing.T) {
	require := require.New(t)

	srv := fakebts.NewDefault()
	c := newTestClient(t, srv)

	cols, err := c.Download(context.Background(), "21-1-1", 0)
	require.NoError(err)
	require.Zero(cols.Rows())
	require.Empty(cols.Names())

	b, err := json.Marshal(cols)
	require.NoError(err)
	require.JSONEq(`{}`, string(b))

	require.Zero(srv.Count("inquiredf"))
	require.Equal(1, srv.Count("download"))
	require.Equal(1, fakebts.IntAttr(srv.Last(), "startpos"))
}

func TestDownload_LastNBeyondCount(t *testing.T) {
	require := require.New(t)

	srv := fakebts.NewDefault()
	srv.Prepend(
		fakebts.Route{
			Match: "<cmd>inquiredf</cmd>",
			Reply: `<?xml version="1.0" encoding="UTF-8"?><bts version="1.0"><cmd>inquiredf_resp</cmd><list count="1">` +
				`<chl devtype="27" devid="21" subdevid="1" chlid="1" testid="143" count="5">true</chl></list></bts>`,
		},
		pagedDownloads(5),
	)
	c := newTestClient(t, srv)

	cols, err := c.Download(context.Background(), "21-1-1", 10)
	require.NoError(err)
	require.Equal(5, cols.Rows())
	require.Equal([]int{1}, startPositions(srv, "download"))
}

func TestDownload_Pagination(t *testing.T) {
	cases := []struct {
		total    int
		pageSize int
		want     []int
	}{
		{total: 2500, pageSize: 1000, want: []int{1, 1001, 2001}},
		{total: 2000, pageSize: 1000, want: []int{1, 1001, 2001}},
		{total: 999, pageSize: 1000, want: []int{1}},
		{total: 7, pageSize: 3, want: []int{1, 4, 7}},
		{total: 6, pageSize: 3, want: []int{1, 4, 7}},
		{total: 0, pageSize: 3, want: []int{1}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("total=%d/page=%d", tc.total, tc.pageSize), func(t *testing.T) {
			require := require.New(t)

			srv := fakebts.NewDefault()
			srv.Prepend(pagedDownloads(tc.total))
			c := newTestClient(t, srv, WithPageSize(tc.pageSize))

			cols, err := c.Download(context.Background(), "21-1-1", 0)
			require.NoError(err)
			require.Equal(tc.total, cols.Rows())
			require.Equal(tc.want, startPositions(srv, "download"))

			for i, v := range cols.Column("seqid") {
				require.EqualValues(i+1, v)
			}
			require.EqualValues(len(tc.want), c.Metrics().PageRecvCount.Load())
			require.EqualValues(tc.total, c.Metrics().RecordRecvCount.Load())
		})
	}
}

func TestDownload_DecodeFailureDiscardsPages(t *testing.T) {
	require := require.New(t)

	srv := fakebts.NewDefault()
	srv.Prepend(fakebts.Route{
		Match: "<cmd>download</cmd>",
		Handle: func(req string) string {
			start := fakebts.IntAttr(req, "startpos")
			if start == 1001 {
				return `<?xml version="1.0" encoding="UTF-8"?><bts version="1.0"><list count="1000"><data seqid="1001"`
			}

			return fakebts.DownloadPage(start, 1000)
		},
	})
	c := newTestClient(t, srv)

	cols, err := c.Download(context.Background(), "21-1-1", 0)
	require.Nil(cols)
	require.ErrorIs(err, ErrDecode)

	var de *DownloadError
	require.True(errors.As(err, &de))
	require.Equal("download", de.Verb)
	require.Equal("21-1-1", de.Pipeline)
	require.Equal(1001, de.Cursor)
	require.EqualValues(1, c.Metrics().DecodeErrCount.Load())
}

func TestDownload_ConnectionLost(t *testing.T) {
	require := require.New(t)

	srv := fakebts.New(
		fakebts.Route{Match: "<cmd>connect</cmd>", Reply: fakebts.ConnectResponse},
		fakebts.Route{Match: "<cmd>getdevinfo</cmd>", Reply: fakebts.DeviceInfoResponse},
		fakebts.Route{Match: `startpos="1" `, Reply: fakebts.DownloadPage(1, 1000)},
	)
	c := newTestClient(t, srv)

	_, err := c.Download(context.Background(), "21-1-1", 0)
	require.ErrorIs(err, ErrConnection)

	var de *DownloadError
	require.True(errors.As(err, &de))
	require.Equal(1001, de.Cursor)
}

func TestDownload_Canceled(t *testing.T) {
	require := require.New(t)

	srv := fakebts.NewDefault()
	c := newTestClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Download(ctx, "21-1-1", 0)
	require.ErrorIs(err, context.Canceled)
}

func TestDownloadLog(t *testing.T) {
	require := require.New(t)

	srv := fakebts.NewDefault()
	c := newTestClient(t, srv)

	recs, err := c.DownloadLog(context.Background(), "21-1-1")
	require.NoError(err)
	require.Len(recs, 5)
	require.EqualValues(1, recs[0].Value("seqid"))
	require.EqualValues(100000, recs[0].Value("log_code"))
	require.Equal("2025-12-28 22:30:11", recs[4].Value("atime"))

	require.Equal(1, srv.Count("downloadlog"))
	require.Contains(srv.Last(),
		`<cmd>downloadlog</cmd><download devtype="27" devid="21" subdevid="1" chlid="1" testid="0" startpos="1" count="1000">`)
}

func TestSteps(t *testing.T) {
	require := require.New(t)

	srv := fakebts.NewDefault()
	c := newTestClient(t, srv)

	recs, err := c.Steps(context.Background(), "21-1-1")
	require.NoError(err)
	require.Len(recs, 3)
	require.Equal("rest", recs[0].Value("steptype"))
	require.Equal("cv", recs[2].Value("steptype"))
	require.EqualValues(7927, recs[2].Value("endseqid"))

	require.Contains(srv.Last(), `<cmd>downloadStepLayer</cmd><downloadStepLayer devtype="27"`)
}
