// Package schema describes the backend tables managed by the admin console.
//
// Every table is declared ahead of time as a Schema: an ordered list of fields,
// each tagged with a FieldType (text, enum, date, timestamp, url). Server-managed
// fields (created_time, last_updated_time, uploaded_time) are marked read-only and
// never appear in create or update payloads.
//
// Records travel as flat JSON objects. Identifiers are canonicalised to text on
// decode, so 7, 7.0 and "7" name the same row. Values are normalised per field type
// before comparison or transmission; date fields are sent in DateLayout.
//
// # Usage
//
//	payload, err := reports.Payload(rec)
//	if err != nil {
//	    var verr *schema.ValidationError
//	    errors.As(err, &verr)
//	}
package schema
