// Package secrets implements the encrypted credential store and the
// password-based encryption used for backups.
//
// # Encryption
//
// Keys are derived with PBKDF2 (HMAC-SHA-256, 100,000 iterations) and
// data is sealed with AES-256-GCM. A sealed envelope is
//
//	salt (16 bytes) | nonce (12 bytes) | ciphertext + tag
//
// and is self-contained: opening needs only the envelope and the
// password. Salt and nonce are drawn fresh for every seal, so equal
// plaintexts never produce equal envelopes. Tag verification failure
// (wrong password or tampering) surfaces as ErrDecryptionFailed; data
// too short to hold the header surfaces as ErrInvalidEnvelope.
//
// # Credential store
//
// The Store keeps a Bundle of the token, data-encryption passphrase,
// owner, and repo in .tosk/secrets.enc as base64 text of a sealed
// envelope. The master password is asked on load and asked again,
// fresh, on every persist; it is never written anywhere.
//
// The data-encryption passphrase may be empty. An empty passphrase is a
// recorded choice meaning backups travel unencrypted. The token, owner,
// and repo must be non-empty; a blank answer aborts the operation with
// ErrMissingCredential.
//
// All prompting goes through the Prompter interface, so every
// interactive flow can be scripted in tests.
//
// Note that sealed envelopes do not record whether sealing happened at
// all: pulling a backup that was pushed unencrypted while a passphrase
// is configured fails as a decryption error rather than detecting the
// mismatch. Tagging envelopes would break compatibility with existing
// remote backups, so the ambiguity stands.
package secrets
