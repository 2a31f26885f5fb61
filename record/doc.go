// Package record decodes BTS XML responses into ordered field records.
//
// A BTS response carries its results as sibling elements inside a container,
// usually <list count="N">. Extract turns each sibling into a Record holding
// every attribute plus the element's text content (keyed by the tag name),
// with each value coerced by Coerce:
//
//	<inquire voltage="3.8834" cycle_id="1" step_type="--" workstatus="finish" />
//
// decodes to {voltage: 3.8834, cycle_id: 1, step_type: nil, workstatus: "finish"}.
//
// ToColumns transposes records sharing a field set into one slice per field,
// the shape used for downloaded telemetry.
package record
