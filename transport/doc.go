// Package transport implements the BTS framing layer over a stream socket.
//
// A message on the wire is an XML document followed by the sentinel
// "\n\n#\r\n". There is no length prefix and no transaction id, so the end of
// a response is found by reading until the sentinel appears, and a
// connection carries exactly one outstanding request at a time.
//
// Transport wraps every request body in the common document envelope:
//
//	<?xml version="1.0" encoding="UTF-8" ?><bts version="1.0">BODY</bts>
//
// After a failed send or receive the position in the stream is unknown, so
// the Transport closes itself and later calls fail with ErrConnClosed.
package transport
