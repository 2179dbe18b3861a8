// Package task defines the task entity and its serialized record form.
//
// A task record, as it appears inside the store document:
//
//	{
//	  "id": 1,
//	  "title": "Buy milk",
//	  "description": "",
//	  "status": "TODO",
//	  "created_at": "2024-01-01T09:30:00.000000Z",
//	  "updated_at": "2024-01-01T09:30:00.000000Z"
//	}
//
// # Status Values
//
//   - "TODO": not started (default)
//   - "DOING": in progress
//   - "DONE": complete
//
// Any other status literal is a format error when decoding a record.
//
// # Timestamps
//
// Timestamps are kept in UTC at microsecond precision and written in a
// fixed-width RFC 3339 form, so their textual order matches their time order.
// Every mutation moves updated_at strictly forward.
package task
