// Package drive translates tool-level requests into Google Drive v3 API
// calls and maps the results back into bounded, typed records.
//
// The package covers three concerns:
//
//   - Query building: free-text search, recency windows, and folder listings
//     are rendered into Drive's query language with user input escaped, so a
//     term containing quotes cannot change the query's matching scope.
//   - Paged listing: CollectFiles follows opaque page cursors up to a hard
//     page cap, deduplicating across page boundaries.
//   - Content retrieval: the Retriever inspects a file's content type first
//     and either exports Google-native documents to a plain representation,
//     downloads text-compatible bytes, or refuses opaque binary outright.
//     A size cap bounds every transfer.
//
// Rate-limited calls are retried with exponential backoff; all other remote
// failures are classified into the fault taxonomy and surfaced immediately.
package drive
