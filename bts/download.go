package bts

import (
	"context"
	"fmt"

	"github.com/arloliu/go-bts/channel"
	"github.com/arloliu/go-bts/command"
	"github.com/arloliu/go-bts/record"
)

type pageBuilder func(t command.Target, startPos, count int) *command.Command

// Download returns the telemetry of pipeline id as columns, one slice of
// values per field such as seqid, volt and curr.
//
// lastN > 0 downloads only the newest lastN records, starting at the
// current datapoint count minus lastN plus one; lastN <= 0 downloads every
// record from the first. Large channels hold hundreds of thousands of
// records, so a full download takes many round trips.
func (c *Client) Download(ctx context.Context, id string, lastN int) (*record.Columns, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.resolveOne(id)
	if err != nil {
		return nil, err
	}

	startPos := 1
	if lastN > 0 {
		total, err := c.datapoints(ctx, p)
		if err != nil {
			return nil, err
		}
		startPos = max(1, int(total)-lastN+1)
	}

	recs, err := c.paginate(ctx, p, command.VerbDownload, command.Download, startPos)
	if err != nil {
		return nil, err
	}

	cols, err := record.ToColumns(recs)
	if err != nil {
		c.metrics.incDecodeErrCount()
		return nil, err
	}

	return cols, nil
}

// DownloadLog returns the event log of pipeline id, oldest first.
func (c *Client) DownloadLog(ctx context.Context, id string) ([]*record.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.resolveOne(id)
	if err != nil {
		return nil, err
	}

	return c.paginate(ctx, p, command.VerbDownloadLog, command.DownloadLog, 1)
}

// Steps returns the per-step summary of the current test of pipeline id,
// such as step type, start and end voltage and capacity, in step order.
func (c *Client) Steps(ctx context.Context, id string) ([]*record.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.resolveOne(id)
	if err != nil {
		return nil, err
	}

	return c.paginate(ctx, p, command.VerbDownloadStepLayer, command.DownloadStepLayer, 1)
}

func (c *Client) resolveOne(id string) (*channel.Pipeline, error) {
	if c.channels == nil {
		return nil, ErrNotConnected
	}

	return c.channels.Resolve(id)
}

// datapoints returns the number of stored datapoints of p.
func (c *Client) datapoints(ctx context.Context, p *channel.Pipeline) (int64, error) {
	pipelines := []*channel.Pipeline{p}

	cmd, err := command.InquireDF(channel.Targets(pipelines))
	if err != nil {
		return 0, err
	}

	recs, err := c.batch(ctx, cmd, pipelines)
	if err != nil {
		return 0, err
	}

	n, ok := recs[0].Int("count")
	if !ok {
		c.metrics.incDecodeErrCount()
		return 0, &record.DecodeError{Err: fmt.Errorf("inquiredf record of %s has no integer count", p.ID)}
	}

	return n, nil
}

// paginate requests pages of the configured size from startPos on, moving
// the cursor by each page's count, until a page shorter than the page size
// or an empty page ends the data. Any failure discards every page.
func (c *Client) paginate(ctx context.Context, p *channel.Pipeline, verb string, build pageBuilder, startPos int) ([]*record.Record, error) {
	size := c.cfg.pageSize
	target := p.Target()

	var recs []*record.Record
	cursor := startPos
	for {
		resp, err := c.roundTrip(ctx, build(target, cursor, size))
		if err != nil {
			return nil, &DownloadError{Verb: verb, Pipeline: p.ID, Cursor: cursor, Err: err}
		}

		page, err := record.ExtractPage(resp, record.DefaultContainer)
		if err != nil {
			c.metrics.incDecodeErrCount()
			c.logger.Error("failed to decode page", "method", "paginate", "verb", verb, "pipeline", p.ID,
				"startpos", cursor, "error", err)

			return nil, &DownloadError{Verb: verb, Pipeline: p.ID, Cursor: cursor, Err: err}
		}

		c.metrics.incPageRecvCount(len(page.Records))
		recs = append(recs, page.Records...)

		if page.Count == 0 || page.Count < size {
			c.logger.Debug("download complete", "method", "paginate", "verb", verb, "pipeline", p.ID,
				"startpos", startPos, "records", len(recs))

			return recs, nil
		}
		cursor += page.Count
	}
}
