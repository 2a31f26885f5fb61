// Package bts implements a client for the BTS battery cycler protocol, the
// XML-over-TCP command protocol spoken by Neware battery test systems.
//
// A Client owns one connection to one server. Open logs in and enumerates
// the server's channels into a channel.Map; every operation then resolves
// pipeline ids such as "21-1-1" through that map, sends one command and
// decodes the response into records.
//
// The protocol has no transaction ids, so a Client runs one operation at a
// time; concurrent calls are serialized. To talk to several servers, use one
// Client per server.
//
// Outcomes reported by the server, such as a "false" result of a stop, are
// returned as record fields, not as errors: one batch response can mix
// successes and failures. Errors are reserved for client-side failures:
//
//   - ErrConnection: connect, send or receive failed; the connection is closed.
//   - ErrDecode: a response could not be decoded.
//   - ErrNotFound: a pipeline id is not in the channel map; nothing was sent.
//   - ErrNoDevices: the server reported no channels; Open fails.
//   - ErrPrecondition: Start refused because the pipeline is not idle; nothing was sent.
//   - ErrUsage: invalid arguments.
//
// Example:
//
//	cfg, err := bts.NewClientConfig("127.0.0.1", 502)
//	if err != nil {
//		return err
//	}
//	client, err := bts.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	status, err := client.Inquire(ctx, "21-1-1")
package bts
