// Package command builds BTS command bodies.
//
// Every verb has a builder that returns a *Command holding a typed element
// tree. Marshal serializes the tree with encoding/xml, so attribute values
// and text are always escaped. The document preamble, the <bts> root element
// and the end-of-message sentinel are added by the transport package, not
// here.
//
// Batch verbs (getchlstatus, inquire, inquiredf, start, stop, clearflag,
// light) wrap one child element per addressed channel in a <list> whose
// count attribute equals the number of channels:
//
//	<cmd>stop</cmd>
//	<list count="1">
//	  <stop ip="127.0.0.1" devtype="27" devid="21" subdevid="1" chlid="1">true</stop>
//	</list>
//
// Download verbs address a single channel and carry a start position and a
// page size.
package command
