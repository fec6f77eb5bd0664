// Package catalog defines the canonical puzzle item shape and the client
// port the session consumes. Loose upstream fields (title vs. name,
// release date vs. first air date) are normalized into Item at the client
// boundary so the engine never probes record shapes.
package catalog
