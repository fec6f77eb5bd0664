// Package ledger persists cross-session game progress: daily outcomes,
// streak records, the seen-recently set, and player settings. Everything is
// stored through a flat string key-value port with single-key atomicity;
// invariants are scoped per (mode, media, day) key tuple so no cross-key
// transactions are needed.
package ledger
