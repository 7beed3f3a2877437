// Package auth implements the bearer-token codec.
//
// A single Codec, configured with one shared HS256 secret at process start,
// serves both directions of the trust boundary:
//
//   - VerifyHeader validates incoming "Bearer <token>" credentials and
//     extracts the subject user identifier.
//   - Issue mints short-lived service tokens that the backend client uses to
//     act on a user's behalf.
//
// Keeping issuance and verification on one configuration-owned secret avoids
// drift between the two paths. There is no key rotation and no revocation.
package auth
