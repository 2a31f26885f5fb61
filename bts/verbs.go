package bts

import (
	"context"
	"fmt"

	"github.com/arloliu/go-bts/channel"
	"github.com/arloliu/go-bts/command"
	"github.com/arloliu/go-bts/record"
)

// Status returns the state of each pipeline, keyed by pipeline id. No ids
// selects every pipeline.
//
// Each record holds the response fields with the pipeline's channel map
// fields merged in; the state is under "status", e.g. "finish" or "working".
func (c *Client) Status(ctx context.Context, ids ...string) (*Results, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pipelines, err := c.resolve(ids)
	if err != nil {
		return nil, err
	}

	return c.query(ctx, pipelines, command.Status, "status")
}

// Inquire returns the live reading of each pipeline, keyed by pipeline id.
// No ids selects every pipeline.
//
// Each record holds the response fields, such as voltage, current,
// workstatus and barcode, with the pipeline's channel map fields merged in.
func (c *Client) Inquire(ctx context.Context, ids ...string) (*Results, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pipelines, err := c.resolve(ids)
	if err != nil {
		return nil, err
	}

	return c.query(ctx, pipelines, command.Inquire, "workstatus")
}

// InquireDF returns the current test id and number of stored datapoints of
// each pipeline, keyed by pipeline id. No ids selects every pipeline.
func (c *Client) InquireDF(ctx context.Context, ids ...string) (*Results, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pipelines, err := c.resolve(ids)
	if err != nil {
		return nil, err
	}

	return c.query(ctx, pipelines, command.InquireDF, "")
}

// NumDatapoints returns the number of stored datapoints of each pipeline.
// No ids selects every pipeline.
func (c *Client) NumDatapoints(ctx context.Context, ids ...string) (map[string]int64, error) {
	res, err := c.InquireDF(ctx, ids...)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, res.Len())
	for _, id := range res.IDs() {
		rec, _ := res.Get(id)
		n, ok := rec.Int("count")
		if !ok {
			return nil, &record.DecodeError{Err: fmt.Errorf("inquiredf record of %s has no integer count", id)}
		}
		counts[id] = n
	}

	return counts, nil
}

// TestID returns the channel map fields of each pipeline plus its current
// test id under "test_id" and the globally unique "{pipeline}-{testid}"
// under "full_test_id". No ids selects every pipeline.
func (c *Client) TestID(ctx context.Context, ids ...string) (*Results, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pipelines, err := c.resolve(ids)
	if err != nil {
		return nil, err
	}

	cmd, err := command.InquireDF(channel.Targets(pipelines))
	if err != nil {
		return nil, err
	}

	recs, err := c.batch(ctx, cmd, pipelines)
	if err != nil {
		return nil, err
	}

	res := newResults(len(pipelines))
	for i, p := range pipelines {
		testID, ok := recs[i].Int("testid")
		if !ok {
			c.metrics.incDecodeErrCount()
			return nil, &record.DecodeError{Err: fmt.Errorf("inquiredf record of %s has no integer testid", p.ID)}
		}

		rec := p.Fields()
		rec.Set("test_id", testID)
		rec.Set("full_test_id", fmt.Sprintf("%s-%d", p.ID, testID))
		res.add(p.ID, rec)
	}

	return res, nil
}

type batchBuilder func([]command.Target) (*command.Command, error)

// query runs a batch query and merges the channel map fields into each
// record. A non-empty stateField is the record field holding the pipeline
// state, which is remembered for Start.
func (c *Client) query(ctx context.Context, pipelines []*channel.Pipeline, build batchBuilder, stateField string) (*Results, error) {
	cmd, err := build(channel.Targets(pipelines))
	if err != nil {
		return nil, err
	}

	recs, err := c.batch(ctx, cmd, pipelines)
	if err != nil {
		return nil, err
	}

	res := newResults(len(pipelines))
	for i, p := range pipelines {
		rec := recs[i]
		rec.Merge(p.Fields())
		res.add(p.ID, rec)

		if stateField == "" {
			continue
		}
		if state, ok := rec.String(stateField); ok {
			c.states.Store(p.ID, state)
		}
	}

	return res, nil
}

// Start starts the test profile at payload on pipeline id, with barcode as
// the sample id. payload is a path on the server host and is passed through
// unchanged.
//
// Start is refused with a PreconditionError, before anything is sent, unless
// the last observed state of the pipeline is startable (see
// WithStartableStates). Pipelines without an observed state are inquired
// first.
//
// The server's verdict is returned under "start", e.g. "ok" or "false".
func (c *Client) Start(ctx context.Context, id, barcode, payload string) ([]*record.Record, error) {
	return c.StartMany(ctx, []string{id}, []string{barcode}, []string{payload})
}

// StartMany starts several pipelines in one command. ids, barcodes and
// payloads are parallel and must have the same non-zero length. If any
// pipeline fails the precondition, none is started.
func (c *Client) StartMany(ctx context.Context, ids, barcodes, payloads []string) ([]*record.Record, error) {
	if len(ids) == 0 {
		return nil, usageErr("start requires at least one pipeline")
	}
	if len(barcodes) != len(ids) || len(payloads) != len(ids) {
		return nil, usageErr("start got %d pipelines, %d barcodes and %d payloads", len(ids), len(barcodes), len(payloads))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pipelines, err := c.resolve(ids)
	if err != nil {
		return nil, err
	}

	if err := c.checkStartable(ctx, pipelines); err != nil {
		return nil, err
	}

	jobs := make([]command.Job, 0, len(pipelines))
	for i, p := range pipelines {
		jobs = append(jobs, command.Job{Target: p.Target(), Barcode: barcodes[i], Payload: payloads[i]})
	}

	cmd, err := command.Start(jobs, command.DefaultBackup(c.cfg.backupDir))
	if err != nil {
		return nil, err
	}

	recs, err := c.batch(ctx, cmd, pipelines)
	if err != nil {
		return nil, err
	}

	for i, p := range pipelines {
		if v, _ := recs[i].String(command.VerbStart); v == "ok" {
			c.states.Store(p.ID, "working")
		}
	}

	return recs, nil
}

func (c *Client) checkStartable(ctx context.Context, pipelines []*channel.Pipeline) error {
	var unknown []*channel.Pipeline
	for _, p := range pipelines {
		if _, ok := c.states.Load(p.ID); !ok {
			unknown = append(unknown, p)
		}
	}

	if len(unknown) > 0 {
		if _, err := c.query(ctx, unknown, command.Inquire, "workstatus"); err != nil {
			return err
		}
	}

	for _, p := range pipelines {
		state, _ := c.states.Load(p.ID)
		if c.cfg.startable(state) {
			continue
		}

		c.metrics.incPreconditionErrCount()
		c.logger.Warn("start refused", "method", "StartMany", "pipeline", p.ID, "state", state)

		return &PreconditionError{Pipeline: p.ID, State: state, Allowed: c.cfg.StartableStates()}
	}

	return nil
}

// Stop stops the tests running on pipelines ids.
//
// The server's verdict is returned under "stop", e.g. "ok" or "false".
func (c *Client) Stop(ctx context.Context, ids ...string) ([]*record.Record, error) {
	return c.control(ctx, command.VerbStop, command.Stop, ids, func(p *channel.Pipeline, rec *record.Record) {
		// the next start has to observe the state again
		if v, _ := rec.String(command.VerbStop); v == "ok" {
			c.states.Delete(p.ID)
		}
	})
}

// ClearFlag clears the alarm flag of pipelines ids.
//
// The server's verdict is returned under "clearflag".
func (c *Client) ClearFlag(ctx context.Context, ids ...string) ([]*record.Record, error) {
	return c.control(ctx, command.VerbClearFlag, command.ClearFlag, ids, nil)
}

// Light flashes the indicator light of pipelines ids.
//
// The server's verdict is returned under "light".
func (c *Client) Light(ctx context.Context, ids ...string) ([]*record.Record, error) {
	return c.control(ctx, command.VerbLight, command.Light, ids, nil)
}

// control runs a batch command on the given pipelines and returns the
// records unchanged. onResult, if set, is called per pipeline under the lock.
func (c *Client) control(
	ctx context.Context,
	verb string,
	build batchBuilder,
	ids []string,
	onResult func(*channel.Pipeline, *record.Record),
) ([]*record.Record, error) {
	if len(ids) == 0 {
		return nil, usageErr("%s requires at least one pipeline", verb)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pipelines, err := c.resolve(ids)
	if err != nil {
		return nil, err
	}

	cmd, err := build(channel.Targets(pipelines))
	if err != nil {
		return nil, err
	}

	recs, err := c.batch(ctx, cmd, pipelines)
	if err != nil {
		return nil, err
	}

	if onResult != nil {
		for i, p := range pipelines {
			onResult(p, recs[i])
		}
	}

	return recs, nil
}
