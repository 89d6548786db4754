// Package flash carries a form-submission Result across a
// Post-Redirect-Get cycle.
//
// When a successful submission redirects, the outcome record would be
// lost with the response that produced it. A flash store keeps the record
// alive for exactly one follow-up request: Put persists it when the
// redirect is issued, Take consumes it (read-and-delete) when the target
// page renders.
//
// Two stores are provided. Cookie keeps the JSON-encoded record in a
// single-use AES-GCM-encrypted cookie, so it needs no server-side state.
// Redis keeps the record server-side under a TTL and hands the client
// only an opaque ticket cookie, which keeps cookies small and lets the
// record expire even if the follow-up request never arrives.
package flash
