// Package store reads and writes the task store document.
//
// The store is a single JSON file holding the ID counter and every task record:
//
//	{
//	  "last_id": 2,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "title": "Buy milk",
//	      "description": "",
//	      "status": "TODO",
//	      "created_at": "2024-01-01T09:30:00.000000Z",
//	      "updated_at": "2024-01-01T09:30:00.000000Z"
//	    }
//	  ]
//	}
//
// # Loading
//
// A missing or zero-length file loads as the empty document. Content that is
// not JSON, or whose shape does not match the embedded JSON Schema, fails
// with a *FormatError naming the file.
//
// # Saving
//
// Save writes the whole document to a temporary file in the same directory
// and renames it over the store file, so readers see either the old or the
// new document. Parent directories are created on demand.
//
// # Concurrency
//
// A Store holds no lock. Two load-mutate-save sequences that interleave lose
// the first save. FileLock provides an optional advisory lock for callers
// that need single-writer discipline across processes.
package store
